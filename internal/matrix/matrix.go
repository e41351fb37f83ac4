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

// Package matrix is a naive, dense matrix kernel. It is row-major and
// allocates a fresh backing array for every transform (slice,
// transpose, arithmetic); there is no blocking, no SIMD, no aliasing
// views. The element type is generic so the same storage and slicing
// machinery serves both the float64 algebraic matrices of the simplex
// driver and the int index matrices returned by the row/col extrema.
package matrix

import (
	"fmt"
	"iter"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types Dense supports.
type Number interface {
	constraints.Float | constraints.Integer
}

// Dense is a rectangular, row-major array of T.
type Dense[T Number] struct {
	rows, cols int
	data       []T
}

// New returns an rows x cols matrix with every element set to zero.
func New[T Number](rows, cols int) (*Dense[T], error) {
	return NewFilled(rows, cols, T(0))
}

// NewFilled returns an rows x cols matrix with every element set to fill.
func NewFilled[T Number](rows, cols int, fill T) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}

	data := make([]T, rows*cols)
	for i := range data {
		data[i] = fill
	}
	return &Dense[T]{rows: rows, cols: cols, data: data}, nil
}

// Identity returns the n x n identity matrix.
func Identity[T Number](n int) (*Dense[T], error) {
	m, err := New[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[m.index(i, i)] = T(1)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int { return m.cols }

func (m *Dense[T]) index(r, c int) int {
	return r*m.cols + c
}

func (m *Dense[T]) checkIndex(r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("%w: (%d,%d) in %dx%d matrix", ErrInvalidIndex, r, c, m.rows, m.cols)
	}
	return nil
}

// At returns the element at (row, col).
func (m *Dense[T]) At(row, col int) (T, error) {
	if err := m.checkIndex(row, col); err != nil {
		var zero T
		return zero, err
	}
	return m.data[m.index(row, col)], nil
}

// Set writes v at (row, col).
func (m *Dense[T]) Set(row, col int, v T) error {
	if err := m.checkIndex(row, col); err != nil {
		return err
	}
	m.data[m.index(row, col)] = v
	return nil
}

// Clone returns a deep copy.
func (m *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Dense[T]{rows: m.rows, cols: m.cols, data: data}
}

// Min returns the smallest element.
func (m *Dense[T]) Min() (T, error) {
	var zero T
	if len(m.data) == 0 {
		return zero, ErrEmpty
	}
	result := m.data[0]
	for _, v := range m.data[1:] {
		if v < result {
			result = v
		}
	}
	return result, nil
}

// Max returns the largest element.
func (m *Dense[T]) Max() (T, error) {
	var zero T
	if len(m.data) == 0 {
		return zero, ErrEmpty
	}
	result := m.data[0]
	for _, v := range m.data[1:] {
		if v > result {
			result = v
		}
	}
	return result, nil
}

// Sum returns the sum of every element.
func (m *Dense[T]) Sum() (T, error) {
	var zero T
	if len(m.data) == 0 {
		return zero, ErrEmpty
	}
	var result T
	for _, v := range m.data {
		result += v
	}
	return result, nil
}

// RowMax returns, for each row, the largest element (as an rows x 1
// column) and the column index it occurs at (first occurrence wins).
func (m *Dense[T]) RowMax() (*Dense[T], *Dense[int], error) {
	return m.rowExtreme(func(a, b T) bool { return a > b })
}

// RowMin returns, for each row, the smallest element and its column index.
func (m *Dense[T]) RowMin() (*Dense[T], *Dense[int], error) {
	return m.rowExtreme(func(a, b T) bool { return a < b })
}

func (m *Dense[T]) rowExtreme(better func(a, b T) bool) (*Dense[T], *Dense[int], error) {
	values, err := New[T](m.rows, 1)
	if err != nil {
		return nil, nil, err
	}
	indices, err := New[int](m.rows, 1)
	if err != nil {
		return nil, nil, err
	}

	for r := 0; r < m.rows; r++ {
		best := m.data[m.index(r, 0)]
		bestCol := 0
		for c := 1; c < m.cols; c++ {
			v := m.data[m.index(r, c)]
			if better(v, best) {
				best = v
				bestCol = c
			}
		}
		values.data[values.index(r, 0)] = best
		indices.data[indices.index(r, 0)] = bestCol
	}
	return values, indices, nil
}

// ColMax returns, for each column, the largest element (as a 1 x cols
// row) and the row index it occurs at (first occurrence wins).
func (m *Dense[T]) ColMax() (*Dense[T], *Dense[int], error) {
	return m.colExtreme(func(a, b T) bool { return a > b })
}

// ColMin returns, for each column, the smallest element and its row index.
func (m *Dense[T]) ColMin() (*Dense[T], *Dense[int], error) {
	return m.colExtreme(func(a, b T) bool { return a < b })
}

func (m *Dense[T]) colExtreme(better func(a, b T) bool) (*Dense[T], *Dense[int], error) {
	values, err := New[T](1, m.cols)
	if err != nil {
		return nil, nil, err
	}
	indices, err := New[int](1, m.cols)
	if err != nil {
		return nil, nil, err
	}

	for c := 0; c < m.cols; c++ {
		best := m.data[m.index(0, c)]
		bestRow := 0
		for r := 1; r < m.rows; r++ {
			v := m.data[m.index(r, c)]
			if better(v, best) {
				best = v
				bestRow = r
			}
		}
		values.data[values.index(0, c)] = best
		indices.data[indices.index(0, c)] = bestRow
	}
	return values, indices, nil
}

// MakeTranspose returns a new, transposed matrix.
func (m *Dense[T]) MakeTranspose() *Dense[T] {
	result, _ := New[T](m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			result.data[result.index(c, r)] = m.data[m.index(r, c)]
		}
	}
	return result
}

// Slice returns the selected rows x cols sub-block, in original order.
// An empty Range means "all indices along this axis".
func (m *Dense[T]) Slice(rows, cols Range) (*Dense[T], error) {
	rStart, rEnd, err := rows.bounds(m.rows)
	if err != nil {
		return nil, err
	}
	cStart, cEnd, err := cols.bounds(m.cols)
	if err != nil {
		return nil, err
	}

	result, err := New[T](rEnd-rStart+1, cEnd-cStart+1)
	if err != nil {
		return nil, err
	}

	for r := rStart; r <= rEnd; r++ {
		for c := cStart; c <= cEnd; c++ {
			result.data[result.index(r-rStart, c-cStart)] = m.data[m.index(r, c)]
		}
	}
	return result, nil
}

// Update overwrites the selected sub-block with src.
func (m *Dense[T]) Update(rows, cols Range, src *Dense[T]) error {
	rStart, rEnd, err := rows.bounds(m.rows)
	if err != nil {
		return err
	}
	cStart, cEnd, err := cols.bounds(m.cols)
	if err != nil {
		return err
	}

	wantRows, wantCols := rEnd-rStart+1, cEnd-cStart+1
	if src.rows != wantRows || src.cols != wantCols {
		return fmt.Errorf(
			"%w: target block %dx%d, src %dx%d", ErrShapeMismatch, wantRows, wantCols, src.rows, src.cols,
		)
	}

	for r := rStart; r <= rEnd; r++ {
		for c := cStart; c <= cEnd; c++ {
			m.data[m.index(r, c)] = src.data[src.index(r-rStart, c-cStart)]
		}
	}
	return nil
}

// Equal reports structural equality: same dimensions, same elements.
func (m *Dense[T]) Equal(other *Dense[T]) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (m *Dense[T]) sameShape(other *Dense[T]) error {
	if m.rows != other.rows || m.cols != other.cols {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, m.rows, m.cols, other.rows, other.cols)
	}
	return nil
}

func (m *Dense[T]) elementWise(other *Dense[T], f func(a, b T) T) (*Dense[T], error) {
	if err := m.sameShape(other); err != nil {
		return nil, err
	}
	result := m.Clone()
	for i := range result.data {
		result.data[i] = f(result.data[i], other.data[i])
	}
	return result, nil
}

// Add returns m + other.
func (m *Dense[T]) Add(other *Dense[T]) (*Dense[T], error) {
	return m.elementWise(other, func(a, b T) T { return a + b })
}

// Sub returns m - other.
func (m *Dense[T]) Sub(other *Dense[T]) (*Dense[T], error) {
	return m.elementWise(other, func(a, b T) T { return a - b })
}

// MultElem returns the elementwise (Hadamard) product of m and other.
func (m *Dense[T]) MultElem(other *Dense[T]) (*Dense[T], error) {
	return m.elementWise(other, func(a, b T) T { return a * b })
}

// DivElem returns the elementwise quotient of m and other. Division by
// zero propagates +/-Inf (for floating T) rather than failing.
func (m *Dense[T]) DivElem(other *Dense[T]) (*Dense[T], error) {
	return m.elementWise(other, func(a, b T) T { return a / b })
}

// MulMatrix returns the matrix product m * other using the textbook
// triple loop.
func (m *Dense[T]) MulMatrix(other *Dense[T]) (*Dense[T], error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf(
			"%w: cannot multiply %dx%d by %dx%d", ErrShapeMismatch, m.rows, m.cols, other.rows, other.cols,
		)
	}

	result, err := New[T](m.rows, other.cols)
	if err != nil {
		return nil, err
	}

	for r := 0; r < m.rows; r++ {
		for k := 0; k < m.cols; k++ {
			lhs := m.data[m.index(r, k)]
			if lhs == 0 {
				continue
			}
			for c := 0; c < other.cols; c++ {
				result.data[result.index(r, c)] += lhs * other.data[other.index(k, c)]
			}
		}
	}
	return result, nil
}

// MulMatrixInPlace assigns m = m * other, safe even when other aliases m.
func (m *Dense[T]) MulMatrixInPlace(other *Dense[T]) error {
	result, err := m.MulMatrix(other)
	if err != nil {
		return err
	}
	m.rows, m.cols, m.data = result.rows, result.cols, result.data
	return nil
}

// AddScalar returns m + x elementwise.
func (m *Dense[T]) AddScalar(x T) *Dense[T] {
	result := m.Clone()
	for i := range result.data {
		result.data[i] += x
	}
	return result
}

// SubScalar returns m - x elementwise.
func (m *Dense[T]) SubScalar(x T) *Dense[T] {
	result := m.Clone()
	for i := range result.data {
		result.data[i] -= x
	}
	return result
}

// MulScalar returns m * x elementwise.
func (m *Dense[T]) MulScalar(x T) *Dense[T] {
	result := m.Clone()
	for i := range result.data {
		result.data[i] *= x
	}
	return result
}

// DivScalar returns m / x elementwise.
func (m *Dense[T]) DivScalar(x T) (*Dense[T], error) {
	if x == 0 {
		return nil, ErrDivisionByZero
	}
	result := m.Clone()
	for i := range result.data {
		result.data[i] /= x
	}
	return result, nil
}

// Increment adds one to every element in place and returns m for chaining.
// Go has no distinct prefix/postfix operators; callers needing the
// pre-increment value should Clone first.
func (m *Dense[T]) Increment() *Dense[T] {
	for i := range m.data {
		m.data[i]++
	}
	return m
}

// Decrement subtracts one from every element in place and returns m.
func (m *Dense[T]) Decrement() *Dense[T] {
	for i := range m.data {
		m.data[i]--
	}
	return m
}

// LessThan returns a same-shape matrix with 1 where the element is < x, else 0.
func (m *Dense[T]) LessThan(x T) *Dense[T] {
	result := m.Clone()
	for i, v := range result.data {
		if v < x {
			result.data[i] = 1
		} else {
			result.data[i] = 0
		}
	}
	return result
}

// GreaterThan returns a same-shape matrix with 1 where the element is > x, else 0.
func (m *Dense[T]) GreaterThan(x T) *Dense[T] {
	result := m.Clone()
	for i, v := range result.data {
		if v > x {
			result.data[i] = 1
		} else {
			result.data[i] = 0
		}
	}
	return result
}

// Abs returns the elementwise absolute value.
func (m *Dense[T]) Abs() *Dense[T] {
	result := m.Clone()
	for i, v := range result.data {
		if v < 0 {
			result.data[i] = -v
		}
	}
	return result
}

// All is a single-pass, forward iterator over every element in
// row-major order, paired with its linear index.
func (m *Dense[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range m.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Row is a single-pass, forward iterator across one row, advancing by
// 1 within the row and paired with the column index.
func (m *Dense[T]) Row(row int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for c := 0; c < m.cols; c++ {
			if !yield(c, m.data[m.index(row, c)]) {
				return
			}
		}
	}
}

// Col is a single-pass, forward iterator down one column, advancing by
// m.cols in the backing array and paired with the row index.
func (m *Dense[T]) Col(col int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for r := 0; r < m.rows; r++ {
			if !yield(r, m.data[m.index(r, col)]) {
				return
			}
		}
	}
}

func (m *Dense[T]) String() string {
	s := "\n"
	for r := 0; r < m.rows; r++ {
		s += "["
		for c := 0; c < m.cols; c++ {
			s += fmt.Sprintf("%v,", m.data[m.index(r, c)])
		}
		s += "]\n"
	}
	return s
}
