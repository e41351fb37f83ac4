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

// Package preprocess rewrites a Model into the shape internal/simplex
// requires: free variables split into a non-negative positive/negative
// pair, a positive lower bound or a finite upper bound expressed as an
// explicit constraint, and every constraint either Less or Great
// (equality split into a pair). A finite negative lower bound is not
// converted; the simplex driver treats that variable as non-negative.
package preprocess

import (
	"fmt"
	"math"

	"github.com/jsolve-go/jsolve"
)

// Run mutates model in place, applying the three standard-form
// transformations in sequence: free-variable split, bound-to-constraint
// conversion, then equality splitting. Free variables are replaced
// first, so the bound conversion only sees the non-negative pos/neg
// pair (default bounds, no constraint added) in their place.
func Run(model *jsolve.Model) error {
	if err := splitFreeVariables(model); err != nil {
		return err
	}
	if err := boundsToConstraints(model); err != nil {
		return err
	}
	return splitEqualities(model)
}

func splitFreeVariables(model *jsolve.Model) error {
	for _, v := range append([]*jsolve.Variable{}, model.Variables()...) {
		if !v.IsFree() {
			continue
		}

		posName := fmt.Sprintf("FREE_%s_POS", v.Name())
		negName := fmt.Sprintf("FREE_%s_NEG", v.Name())

		pos, err := model.MakeVariable(jsolve.Linear, posName)
		if err != nil {
			return err
		}
		neg, err := model.MakeVariable(jsolve.Linear, negName)
		if err != nil {
			return err
		}
		pos.SetCost(v.Cost())
		neg.SetCost(-v.Cost())

		for _, c := range model.Constraints() {
			coeff := c.Coefficient(v.Name())
			if coeff == 0 {
				continue
			}
			c.RemoveEntry(v.Name())
			c.AddToLHS(coeff, pos)
			c.AddToLHS(-coeff, neg)
		}

		model.RemoveVariable(v.Name())
	}
	return nil
}

func boundsToConstraints(model *jsolve.Model) error {
	for _, v := range append([]*jsolve.Variable{}, model.Variables()...) {
		if v.IsFree() {
			// Already handled by splitFreeVariables; Run always calls
			// both in order, but guard in case callers invoke this
			// directly in a test.
			continue
		}

		if v.LowerBound() > 0 {
			name := fmt.Sprintf("BND_%s_GEQ_%g", v.Name(), v.LowerBound())
			c, err := model.MakeConstraint(jsolve.Great, name)
			if err != nil {
				return err
			}
			c.SetRHS(v.LowerBound())
			c.AddToLHS(1.0, v)
		}

		if !math.IsInf(v.UpperBound(), 1) {
			name := fmt.Sprintf("BND_%s_LEQ_%g", v.Name(), v.UpperBound())
			c, err := model.MakeConstraint(jsolve.Less, name)
			if err != nil {
				return err
			}
			c.SetRHS(v.UpperBound())
			c.AddToLHS(1.0, v)
		}
	}
	return nil
}

func splitEqualities(model *jsolve.Model) error {
	for _, c := range append([]*jsolve.Constraint{}, model.Constraints()...) {
		if c.Type() != jsolve.Equal {
			continue
		}

		geqName := fmt.Sprintf("EQ_CONS_%s_GEQ", c.Name())
		leqName := fmt.Sprintf("EQ_CONS_%s_LEQ", c.Name())

		geq, err := model.MakeConstraint(jsolve.Great, geqName)
		if err != nil {
			return err
		}
		leq, err := model.MakeConstraint(jsolve.Less, leqName)
		if err != nil {
			return err
		}

		geq.SetRHS(c.RHS())
		leq.SetRHS(c.RHS())
		c.Entries(func(name string, coeff float64) {
			v := model.GetVariable(name)
			geq.AddToLHS(coeff, v)
			leq.AddToLHS(coeff, v)
		})

		model.RemoveConstraint(c.Name())
	}
	return nil
}
