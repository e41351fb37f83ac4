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

// Package linalg implements the dense linear-algebra primitives the
// simplex driver needs on top of internal/matrix: a Gaussian solver
// with partial pivoting and a pivoted Doolittle LU factorisation.
package linalg

import "errors"

var (
	ErrNonSquare     = errors.New("linalg: matrix is not square")
	ErrShapeMismatch = errors.New("linalg: shape mismatch")
	ErrSingular      = errors.New("linalg: matrix is singular")
)
