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

package matrix

import "errors"

var (
	ErrInvalidShape   = errors.New("matrix: invalid shape")
	ErrInvalidIndex   = errors.New("matrix: index out of bounds")
	ErrShapeMismatch  = errors.New("matrix: shape mismatch")
	ErrDivisionByZero = errors.New("matrix: division by zero")
	ErrEmpty          = errors.New("matrix: empty")
	ErrEmptyRange     = errors.New("matrix: range is empty")
	ErrInvalidRange   = errors.New("matrix: invalid range")
)
