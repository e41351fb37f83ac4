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

import (
	"math"
	"testing"

	floats "gonum.org/v1/gonum/floats/scalar"
	"gotest.tools/v3/assert"
)

func mustNew(t *testing.T, rows, cols int) *Dense[float64] {
	t.Helper()
	m, err := New[float64](rows, cols)
	assert.NilError(t, err)
	return m
}

func fill(t *testing.T, rows, cols int, vals ...float64) *Dense[float64] {
	t.Helper()
	m := mustNew(t, rows, cols)
	i := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.NilError(t, m.Set(r, c, vals[i]))
			i++
		}
	}
	return m
}

func TestNewRejectsZeroDimensions(t *testing.T) {
	_, err := New[float64](0, 3)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = New[float64](3, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestAtRejectsOutOfBounds(t *testing.T) {
	m := mustNew(t, 2, 2)
	_, err := m.At(2, 0)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = m.At(0, 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.ErrorIs(t, m.Set(-1, 0, 1), ErrInvalidIndex)
}

func TestMinMaxSum(t *testing.T) {
	m := fill(t, 2, 3, 4, -2, 7, 0, 3, 1)

	min, err := m.Min()
	assert.NilError(t, err)
	assert.Equal(t, min, -2.0)

	max, err := m.Max()
	assert.NilError(t, err)
	assert.Equal(t, max, 7.0)

	sum, err := m.Sum()
	assert.NilError(t, err)
	assert.Equal(t, sum, 13.0)
}

func TestAddSubMatrices(t *testing.T) {
	a := fill(t, 2, 2, 1, 2, 3, 4)
	b := fill(t, 2, 2, 10, 20, 30, 40)

	sum, err := a.Add(b)
	assert.NilError(t, err)
	assert.Assert(t, fill(t, 2, 2, 11, 22, 33, 44).Equal(sum))

	diff, err := sum.Sub(b)
	assert.NilError(t, err)
	assert.Assert(t, a.Equal(diff))

	_, err = a.Add(mustNew(t, 1, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMultElem(t *testing.T) {
	a := fill(t, 1, 3, 1, 2, 3)
	b := fill(t, 1, 3, 4, 5, 6)
	got, err := a.MultElem(b)
	assert.NilError(t, err)
	assert.Assert(t, fill(t, 1, 3, 4, 10, 18).Equal(got))
}

func TestDivElemPropagatesInf(t *testing.T) {
	a := fill(t, 1, 3, 1, -1, 2)
	b := fill(t, 1, 3, 0, 0, 2)

	got, err := a.DivElem(b)
	assert.NilError(t, err)

	v0, err := got.At(0, 0)
	assert.NilError(t, err)
	assert.Assert(t, math.IsInf(v0, 1))

	v1, err := got.At(0, 1)
	assert.NilError(t, err)
	assert.Assert(t, math.IsInf(v1, -1))

	v2, err := got.At(0, 2)
	assert.NilError(t, err)
	assert.Equal(t, v2, 1.0)
}

func TestMulMatrixShapeMismatch(t *testing.T) {
	a := mustNew(t, 2, 3)
	b := mustNew(t, 2, 3)
	_, err := a.MulMatrix(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestUpdateRejectsShapeMismatch(t *testing.T) {
	m := mustNew(t, 3, 3)
	rows, err := NewRange(0, 1)
	assert.NilError(t, err)
	err = m.Update(rows, EmptyRange(), mustNew(t, 1, 3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestIncrementDecrementRoundTrip(t *testing.T) {
	m := fill(t, 1, 3, 1, 2, 3)
	want := m.Clone()
	m.Increment().Decrement()
	assert.Assert(t, want.Equal(m))
}

func TestTransposeRoundTrip(t *testing.T) {
	m := fill(t, 2, 3, 1, 2, 3, 4, 5, 6)
	got := m.MakeTranspose().MakeTranspose()
	assert.Assert(t, m.Equal(got))
}

func TestScalarMulDivRoundTrip(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	scaled := m.MulScalar(7)
	back, err := scaled.DivScalar(7)
	assert.NilError(t, err)

	for i, v := range back.data {
		assert.Assert(t, floats.EqualWithinAbs(v, m.data[i], 1e-12))
	}
}

func TestDivScalarByZero(t *testing.T) {
	m := fill(t, 1, 1, 1)
	_, err := m.DivScalar(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestIdentityMultiply(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	id, err := Identity[float64](2)
	assert.NilError(t, err)

	got, err := m.MulMatrix(id)
	assert.NilError(t, err)
	assert.Assert(t, m.Equal(got))
}

func TestSliceEmptyRangeIsWholeMatrix(t *testing.T) {
	m := fill(t, 2, 3, 1, 2, 3, 4, 5, 6)
	got, err := m.Slice(EmptyRange(), EmptyRange())
	assert.NilError(t, err)
	assert.Assert(t, m.Equal(got))
}

func TestSliceSubBlock(t *testing.T) {
	m := fill(t, 3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	rows, err := NewRange(1, 2)
	assert.NilError(t, err)
	cols, err := NewRange(0, 1)
	assert.NilError(t, err)

	got, err := m.Slice(rows, cols)
	assert.NilError(t, err)
	want := fill(t, 2, 2, 4, 5, 7, 8)
	assert.Assert(t, want.Equal(got))
}

func TestUpdatePreservesUntouchedCells(t *testing.T) {
	m := fill(t, 3, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	rows, err := NewRange(1, 1)
	assert.NilError(t, err)
	cols, err := NewRange(0, 1)
	assert.NilError(t, err)

	patch := fill(t, 1, 2, 100, 200)
	assert.NilError(t, m.Update(rows, cols, patch))

	want := fill(t, 3, 3, 1, 2, 3, 100, 200, 6, 7, 8, 9)
	assert.Assert(t, want.Equal(m))
}

func TestRowMaxFirstOccurrenceWins(t *testing.T) {
	m := fill(t, 1, 4, 3, 5, 5, 1)
	values, indices, err := m.RowMax()
	assert.NilError(t, err)

	v, err := values.At(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, v, 5.0)

	idx, err := indices.At(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, idx, 1)
}

func TestColMinFirstOccurrenceWins(t *testing.T) {
	m := fill(t, 3, 1, 2, 2, 9)
	values, indices, err := m.ColMin()
	assert.NilError(t, err)

	v, err := values.At(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, v, 2.0)

	idx, err := indices.At(0, 0)
	assert.NilError(t, err)
	assert.Equal(t, idx, 0)
}

func TestMulMatrixInPlaceAliasing(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	squaredSeparately, err := m.MulMatrix(m)
	assert.NilError(t, err)

	assert.NilError(t, m.MulMatrixInPlace(m))
	assert.Assert(t, squaredSeparately.Equal(m))
}

func TestLessThanGreaterThan(t *testing.T) {
	m := fill(t, 1, 3, 1, 2, 3)
	lt := m.LessThan(2)
	assert.Assert(t, fill(t, 1, 3, 1, 0, 0).Equal(lt))

	gt := m.GreaterThan(2)
	assert.Assert(t, fill(t, 1, 3, 0, 0, 1).Equal(gt))
}

func TestAbs(t *testing.T) {
	m := fill(t, 1, 3, -1, 0, 2)
	assert.Assert(t, fill(t, 1, 3, 1, 0, 2).Equal(m.Abs()))
}

func TestAllIteratesRowMajor(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	var got []float64
	for _, v := range m.All() {
		got = append(got, v)
	}
	assert.DeepEqual(t, got, []float64{1, 2, 3, 4})
}

func TestRowIterator(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	var got []float64
	for _, v := range m.Row(1) {
		got = append(got, v)
	}
	assert.DeepEqual(t, got, []float64{3, 4})
}

func TestColIterator(t *testing.T) {
	m := fill(t, 2, 2, 1, 2, 3, 4)
	var got []float64
	for _, v := range m.Col(1) {
		got = append(got, v)
	}
	assert.DeepEqual(t, got, []float64{2, 4})
}

func TestNewRangeRejectsInverted(t *testing.T) {
	_, err := NewRange(3, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSliceRejectsOutOfBoundsRange(t *testing.T) {
	m := mustNew(t, 2, 2)
	bad, err := NewRange(0, 5)
	assert.NilError(t, err)
	_, err = m.Slice(bad, EmptyRange())
	assert.ErrorIs(t, err, ErrInvalidIndex)
}
