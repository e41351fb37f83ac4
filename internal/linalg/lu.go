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

// Factor computes the Doolittle LU factorisation of A with partial
// pivoting: P*A = L*U, where L is unit lower triangular and U is upper
// triangular. Perm[i] is the row of A that ended up at row i of P*A.
//
// The original Doolittle recurrence this is grounded on has no
// pivoting and fails on a zero or near-zero diagonal entry; this
// version pivots the largest-magnitude entry in the active column to
// the diagonal before eliminating, same as Solve.
func Factor(A *matrix.Dense[float64]) (L, U *matrix.Dense[float64], perm []int, err error) {
	n := A.Rows()
	if n != A.Cols() {
		return nil, nil, nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, A.Rows(), A.Cols())
	}

	work, err := matrix.New[float64](n, n)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := work.Update(matrix.EmptyRange(), matrix.EmptyRange(), A); err != nil {
		return nil, nil, nil, err
	}

	L, err = matrix.New[float64](n, n)
	if err != nil {
		return nil, nil, nil, err
	}

	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := 0; i < n; i++ {
		pivot := i
		best := abs(mustAt(work, i, i))
		for r := i + 1; r < n; r++ {
			if v := abs(mustAt(work, r, i)); v > best {
				best = v
				pivot = r
			}
		}
		if pivot != i {
			swapRows(work, i, pivot)
			swapRowPrefix(L, i, pivot, i)
			perm[i], perm[pivot] = perm[pivot], perm[i]
		}

		if mustAt(work, i, i) == 0 {
			return nil, nil, nil, fmt.Errorf("%w: zero pivot at column %d", ErrSingular, i)
		}

		mustSet(L, i, i, 1)
		for r := i + 1; r < n; r++ {
			factor := mustAt(work, r, i) / mustAt(work, i, i)
			mustSet(L, r, i, factor)
			mustSet(work, r, i, 0)
			for c := i + 1; c < n; c++ {
				mustSet(work, r, c, mustAt(work, r, c)-factor*mustAt(work, i, c))
			}
		}
	}

	return L, work, perm, nil
}

// swapRowPrefix swaps the first upToCol (exclusive) entries of rows i
// and j of L, the part of L already computed by earlier pivot steps.
func swapRowPrefix(L *matrix.Dense[float64], i, j, upToCol int) {
	for c := 0; c < upToCol; c++ {
		vi, vj := mustAt(L, i, c), mustAt(L, j, c)
		mustSet(L, i, c, vj)
		mustSet(L, j, c, vi)
	}
}
