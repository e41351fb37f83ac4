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

package linalg

import (
	"fmt"

	"github.com/jsolve-go/jsolve/internal/matrix"
)

// Solve returns x such that A*x = b using Gaussian elimination with
// partial pivoting (the largest-magnitude entry in the active column
// is pivoted to the diagonal; ties keep the smallest row index).
func Solve(A, b *matrix.Dense[float64]) (*matrix.Dense[float64], error) {
	n := A.Rows()
	if n != A.Cols() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, A.Rows(), A.Cols())
	}
	if b.Rows() != n {
		return nil, fmt.Errorf("%w: A has %d rows, b has %d", ErrShapeMismatch, n, b.Rows())
	}
	if b.Cols() != 1 {
		return nil, fmt.Errorf("%w: b must have one column, has %d", ErrShapeMismatch, b.Cols())
	}

	// Form the augmented matrix [A | b].
	aug, err := matrix.New[float64](n, n+1)
	if err != nil {
		return nil, err
	}
	allRows := matrix.EmptyRange()
	leftCols, err := matrix.NewRange(0, n-1)
	if err != nil {
		return nil, err
	}
	if err := aug.Update(allRows, leftCols, A); err != nil {
		return nil, err
	}
	rhsCol, err := matrix.Single(n)
	if err != nil {
		return nil, err
	}
	if err := aug.Update(allRows, rhsCol, b); err != nil {
		return nil, err
	}

	// Forward elimination.
	for k := 0; k <= n-2; k++ {
		pivot := k
		best := abs(mustAt(aug, k, k))
		for r := k + 1; r < n; r++ {
			if v := abs(mustAt(aug, r, k)); v > best {
				best = v
				pivot = r
			}
		}
		if pivot != k {
			swapRows(aug, k, pivot)
		}

		if mustAt(aug, k, k) == 0 {
			return nil, fmt.Errorf("%w: zero pivot at column %d", ErrSingular, k)
		}

		for i := k + 1; i < n; i++ {
			factor := mustAt(aug, i, k) / mustAt(aug, k, k)
			for c := k; c <= n; c++ {
				mustSet(aug, i, c, mustAt(aug, i, c)-factor*mustAt(aug, k, c))
			}
		}
	}

	if mustAt(aug, n-1, n-1) == 0 {
		return nil, fmt.Errorf("%w: zero pivot at column %d", ErrSingular, n-1)
	}

	// Back substitution.
	x, err := matrix.New[float64](n, 1)
	if err != nil {
		return nil, err
	}
	mustSet(x, n-1, 0, mustAt(aug, n-1, n)/mustAt(aug, n-1, n-1))

	for i := n - 2; i >= 0; i-- {
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += mustAt(aug, i, j) * mustAt(x, j, 0)
		}
		mustSet(x, i, 0, (mustAt(aug, i, n)-sum)/mustAt(aug, i, i))
	}

	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func swapRows(m *matrix.Dense[float64], i, j int) {
	for c := 0; c < m.Cols(); c++ {
		vi, vj := mustAt(m, i, c), mustAt(m, j, c)
		mustSet(m, i, c, vj)
		mustSet(m, j, c, vi)
	}
}

func mustAt(m *matrix.Dense[float64], r, c int) float64 {
	v, err := m.At(r, c)
	if err != nil {
		panic(err)
	}
	return v
}

func mustSet(m *matrix.Dense[float64], r, c int, v float64) {
	if err := m.Set(r, c, v); err != nil {
		panic(err)
	}
}
