/*
 Copyright (C) 2024 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package simplex

import "errors"

var (
	// ErrInfeasibleStart is returned when the initial basis built from
	// the model's constraints is neither primal nor dual feasible. This
	// driver has no phase-1 method, so such models cannot be solved.
	ErrInfeasibleStart = errors.New("simplex: initial basis is neither primal nor dual feasible")
	// ErrUnexpectedConstraintType is returned when a constraint reaches
	// the driver as anything other than Less or Great; internal/preprocess
	// is responsible for eliminating Equal constraints first.
	ErrUnexpectedConstraintType = errors.New("simplex: expected only Less/Great constraints, run preprocess.Run first")
)
