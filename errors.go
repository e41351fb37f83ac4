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

package jsolve

import "errors"

var (
	ErrDuplicateVariable   = errors.New("jsolve: variable already exists")
	ErrDuplicateConstraint = errors.New("jsolve: constraint already exists")
	ErrInvalidBound        = errors.New("jsolve: invalid variable bound")

	ErrUnknownSection     = errors.New("mps: unknown section")
	ErrUnsupportedSection = errors.New("mps: unsupported section")
	ErrMalformedRecord    = errors.New("mps: malformed record")
	ErrUnknownRow         = errors.New("mps: unknown row")
	ErrUnknownColumn      = errors.New("mps: unknown column")
	ErrUnsupportedBound   = errors.New("mps: unsupported bound type")
	ErrNoModel            = errors.New("mps: no model produced")
)
