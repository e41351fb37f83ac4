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

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestMakeVariableRejectsDuplicateName(t *testing.T) {
	m := NewModel(Max, "m")
	_, err := m.MakeVariable(Linear, "x")
	assert.NilError(t, err)
	_, err = m.MakeVariable(Linear, "x")
	assert.ErrorIs(t, err, ErrDuplicateVariable)
}

func TestMakeConstraintRejectsDuplicateName(t *testing.T) {
	m := NewModel(Max, "m")
	_, err := m.MakeConstraint(Less, "c")
	assert.NilError(t, err)
	_, err = m.MakeConstraint(Less, "c")
	assert.ErrorIs(t, err, ErrDuplicateConstraint)
}

func TestNewVariableDefaultsToNonNegative(t *testing.T) {
	m := NewModel(Max, "m")
	x, err := m.MakeVariable(Linear, "x")
	assert.NilError(t, err)
	assert.Equal(t, x.LowerBound(), 0.0)
	assert.Assert(t, math.IsInf(x.UpperBound(), 1))
	assert.Assert(t, !x.IsFree())
}

func TestSetFreeMakesBothBoundsInfinite(t *testing.T) {
	m := NewModel(Max, "m")
	x, err := m.MakeVariable(Linear, "x")
	assert.NilError(t, err)
	x.SetFree()
	assert.Assert(t, x.IsFree())
}

func TestAddToLHSAccumulatesRepeatedVariable(t *testing.T) {
	m := NewModel(Max, "m")
	x, err := m.MakeVariable(Linear, "x")
	assert.NilError(t, err)
	c, err := m.MakeConstraint(Less, "c")
	assert.NilError(t, err)

	c.AddToLHS(2, x)
	c.AddToLHS(3, x)
	assert.Equal(t, c.Coefficient("x"), 5.0)
}

func TestEntriesIteratesInInsertionOrder(t *testing.T) {
	m := NewModel(Max, "m")
	x, err := m.MakeVariable(Linear, "x")
	assert.NilError(t, err)
	y, err := m.MakeVariable(Linear, "y")
	assert.NilError(t, err)
	c, err := m.MakeConstraint(Less, "c")
	assert.NilError(t, err)
	c.AddToLHS(1, y)
	c.AddToLHS(1, x)

	var order []string
	c.Entries(func(name string, _ float64) { order = append(order, name) })
	assert.DeepEqual(t, order, []string{"y", "x"})
}

func TestRemoveVariableReindexesRemaining(t *testing.T) {
	m := NewModel(Max, "m")
	_, err := m.MakeVariable(Linear, "a")
	assert.NilError(t, err)
	_, err = m.MakeVariable(Linear, "b")
	assert.NilError(t, err)
	c, err := m.MakeVariable(Linear, "c")
	assert.NilError(t, err)

	m.RemoveVariable("b")

	assert.Equal(t, len(m.Variables()), 2)
	assert.Assert(t, m.GetVariable("b") == nil)
	assert.Assert(t, m.GetVariable("c") == c)
}

func TestRemoveConstraintReindexesRemaining(t *testing.T) {
	m := NewModel(Max, "m")
	_, err := m.MakeConstraint(Less, "a")
	assert.NilError(t, err)
	_, err = m.MakeConstraint(Less, "b")
	assert.NilError(t, err)
	c, err := m.MakeConstraint(Less, "c")
	assert.NilError(t, err)

	m.RemoveConstraint("b")

	assert.Equal(t, len(m.Constraints()), 2)
	assert.Assert(t, m.GetConstraint("b") == nil)
	assert.Assert(t, m.GetConstraint("c") == c)
}

// TestVariablesPreserveIdentityAcrossModels verifies two independently
// built models with the same shape produce structurally identical
// Variable slices, comparing field-by-field since Variable carries
// unexported state.
func TestVariablesPreserveIdentityAcrossModels(t *testing.T) {
	build := func() *Model {
		m := NewModel(Min, "m")
		x, _ := m.MakeVariable(Linear, "x")
		x.SetCost(3)
		x.SetLowerBound(1)
		return m
	}

	a, b := build(), build()
	assert.DeepEqual(t, a.Variables(), b.Variables(), cmp.AllowUnexported(Variable{}))
}

func TestSenseString(t *testing.T) {
	assert.Equal(t, Max.String(), "Max")
	assert.Equal(t, Min.String(), "Min")
}

func TestConstraintTypeString(t *testing.T) {
	assert.Equal(t, Less.String(), "<=")
	assert.Equal(t, Great.String(), ">=")
	assert.Equal(t, Equal.String(), "=")
}
