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

// Package simplex implements the revised simplex method (Vanderbei,
// Linear Programming, 2014, p92) over the dense internal/matrix kernel.
// It expects a model already rewritten by internal/preprocess: every
// constraint is Less or Great, and every variable's implicit domain is
// [0, +Inf).
package simplex

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jsolve-go/jsolve"
	"github.com/jsolve-go/jsolve/internal/linalg"
	"github.com/jsolve-go/jsolve/internal/matrix"
)

const (
	maxIter = 10000
	eps1    = 1e-8  // minimum direction entry (ratio denominator) considered in the leaving ratio test
	eps2    = 1e-12 // protection against treating a tiny value as strictly negative/positive
)

// Outcome classifies how a solve ended.
type Outcome int

const (
	// Optimal means an optimal basic feasible solution was found.
	Optimal Outcome = iota
	// Unbounded means no leaving variable could be chosen: the
	// objective is unbounded along the entering variable's ray.
	Unbounded
	// IterationLimit means the iteration cap was hit before declaring
	// optimality; no solution is returned.
	IterationLimit
)

func (o Outcome) String() string {
	switch o {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case IterationLimit:
		return "iteration limit"
	default:
		return "unknown"
	}
}

// varEntry identifies one column of the working A matrix that is
// currently basic or non-basic.
type varEntry struct {
	index int
}

// state holds the working matrices for one solve. A has one column
// per user variable plus one slack column per constraint (index >=
// numUserVars marks a slack column); it is built once in initData and
// never mutated afterwards. B and N are rebuilt column-by-column from
// A as variables enter and leave the basis.
type state struct {
	A, c        *matrix.Dense[float64]
	B, N        *matrix.Dense[float64]
	xBasic      *matrix.Dense[float64]
	zNonBasic   *matrix.Dense[float64]
	basics      []varEntry
	nonBasics   []varEntry
	columnNames []string
	numUserVars int
	iter        int
}

func (s *state) isSlack(index int) bool { return index >= s.numUserVars }

// Solve runs the revised simplex method against model, which must
// already be in standard form (see internal/preprocess.Run). It
// returns the optimal solution and Optimal; for Unbounded and
// IterationLimit the solution is nil.
func Solve(model *jsolve.Model) (*jsolve.Solution, Outcome, error) {
	data, err := initData(model)
	if err != nil {
		return nil, Optimal, err
	}

	primalFeasible, err := data.xBasic.Min()
	if err != nil {
		return nil, Optimal, err
	}
	dualFeasible, err := data.zNonBasic.Min()
	if err != nil {
		return nil, Optimal, err
	}

	var outcome Outcome
	switch {
	case primalFeasible >= eps2:
		slog.Info("starting basis is primal feasible, using primal simplex")
		outcome, err = solvePrimal(data)
	case dualFeasible >= eps2:
		slog.Info("starting basis is dual feasible, using dual simplex")
		outcome, err = solveDual(data)
	default:
		return nil, Optimal, ErrInfeasibleStart
	}
	if err != nil {
		return nil, Optimal, err
	}
	if outcome != Optimal {
		return nil, outcome, nil
	}

	sol, err := extractSolution(model, data)
	if err != nil {
		return nil, outcome, err
	}
	slog.Info("solve finished", "objective", sol.Objective, "iterations", data.iter, "outcome", outcome.String())
	return sol, outcome, nil
}

func initData(model *jsolve.Model) (*state, error) {
	vars := model.Variables()
	cons := model.Constraints()

	n := len(vars)
	m := len(cons)
	total := n + m

	A, err := matrix.New[float64](m, total)
	if err != nil {
		return nil, err
	}
	c, err := matrix.New[float64](total, 1)
	if err != nil {
		return nil, err
	}

	varIndex := make(map[string]int, n)
	columnNames := make([]string, total)
	for j, v := range vars {
		varIndex[v.Name()] = j
		columnNames[j] = v.Name()
		if err := c.Set(j, 0, v.Cost()); err != nil {
			return nil, err
		}
	}
	if model.Sense() == jsolve.Min {
		c = c.MulScalar(-1)
	}

	// Every row gets a slack column at index n+i with coefficient +1,
	// so it can serve directly as that row's initial basic variable.
	// Great constraints are sign-flipped so the slack still has
	// coefficient +1 after the flip.
	for i, cons := range cons {
		var sign float64
		switch cons.Type() {
		case jsolve.Less:
			sign = 1
		case jsolve.Great:
			sign = -1
		default:
			return nil, fmt.Errorf("%w: constraint %q", ErrUnexpectedConstraintType, cons.Name())
		}

		cons.Entries(func(name string, coeff float64) {
			j, ok := varIndex[name]
			if !ok {
				return
			}
			_ = A.Set(i, j, sign*coeff)
		})

		slackCol := n + i
		columnNames[slackCol] = fmt.Sprintf("SLACK_%s", cons.Name())
		if err := A.Set(i, slackCol, 1); err != nil {
			return nil, err
		}
	}

	b, err := matrix.New[float64](m, 1)
	if err != nil {
		return nil, err
	}
	for i, cons := range cons {
		sign := 1.0
		if cons.Type() == jsolve.Great {
			sign = -1
		}
		if err := b.Set(i, 0, sign*cons.RHS()); err != nil {
			return nil, err
		}
	}

	nonBasicCols, err := matrix.NewRange(0, n-1)
	if err != nil && n > 0 {
		return nil, err
	}
	var N *matrix.Dense[float64]
	if n > 0 {
		N, err = A.Slice(matrix.EmptyRange(), nonBasicCols)
		if err != nil {
			return nil, err
		}
	} else {
		N, err = matrix.New[float64](m, 1)
		if err != nil {
			return nil, err
		}
	}

	B, err := matrix.Identity[float64](m)
	if err != nil {
		return nil, err
	}

	basics := make([]varEntry, m)
	for i := range basics {
		basics[i] = varEntry{index: n + i}
	}
	nonBasics := make([]varEntry, n)
	zNonBasic, err := matrix.New[float64](maxInt(n, 1), 1)
	if err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		nonBasics[j] = varEntry{index: j}
		cj, err := c.At(j, 0)
		if err != nil {
			return nil, err
		}
		if err := zNonBasic.Set(j, 0, -cj); err != nil {
			return nil, err
		}
	}

	return &state{
		A:           A,
		c:           c,
		B:           B,
		N:           N,
		xBasic:      b,
		zNonBasic:   zNonBasic,
		basics:      basics,
		nonBasics:   nonBasics,
		columnNames: columnNames,
		numUserVars: n,
		iter:        0,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func col(j int) matrix.Range {
	r, _ := matrix.Single(j)
	return r
}

func chooseEntering(column *matrix.Dense[float64]) (int, bool) {
	currentMin := -eps2
	entering := -1
	for i, v := range column.All() {
		if v < currentMin {
			entering = i
			currentMin = v
		}
	}
	return entering, entering >= 0
}

func chooseLeaving(num, denom *matrix.Dense[float64]) (int, bool, error) {
	minRatio := math.MaxFloat64
	leaving := -1
	for i := 0; i < num.Rows(); i++ {
		d, err := denom.At(i, 0)
		if err != nil {
			return 0, false, err
		}
		if d <= eps1 {
			continue
		}
		nv, err := num.At(i, 0)
		if err != nil {
			return 0, false, err
		}
		ratio := nv / d
		if ratio < minRatio {
			minRatio = ratio
			leaving = i
		}
	}
	return leaving, leaving >= 0, nil
}

func primalObjective(s *state) (float64, error) {
	total := 0.0
	for i := 0; i < s.xBasic.Rows(); i++ {
		xi, err := s.xBasic.At(i, 0)
		if err != nil {
			return 0, err
		}
		cj, err := s.c.At(s.basics[i].index, 0)
		if err != nil {
			return 0, err
		}
		total += cj * xi
	}
	return total, nil
}

func solvePrimal(s *state) (Outcome, error) {
	for ; s.iter <= maxIter; s.iter++ {
		obj, err := primalObjective(s)
		if err != nil {
			return Optimal, err
		}
		slog.Debug("primal iteration", "iter", s.iter, "objective", obj)

		entering, found := chooseEntering(s.zNonBasic)
		if !found {
			return Optimal, nil
		}

		enteringCol, err := s.N.Slice(matrix.EmptyRange(), col(entering))
		if err != nil {
			return Optimal, err
		}
		dx, err := linalg.Solve(s.B, enteringCol)
		if err != nil {
			return Optimal, err
		}

		leaving, found, err := chooseLeaving(s.xBasic, dx)
		if err != nil {
			return Optimal, err
		}
		if !found {
			slog.Warn("model is unbounded")
			return Unbounded, nil
		}

		dz, err := btran(s, leaving)
		if err != nil {
			return Optimal, err
		}
		if err := applyPivot(s, entering, leaving, dx, dz); err != nil {
			return Optimal, err
		}
	}

	slog.Warn("iteration limit reached", "limit", maxIter)
	return IterationLimit, nil
}

// solveDual runs when the starting basis is dual feasible but not
// primal feasible. The roles of row and column selection are mirrored
// relative to solvePrimal: the most primal-infeasible basic variable
// picks the leaving row first, then the ratio test over the dual
// direction picks the entering column. applyPivot always takes
// (nonbasic index, basic index) regardless of which search found them.
func solveDual(s *state) (Outcome, error) {
	for ; s.iter <= maxIter; s.iter++ {
		obj, err := primalObjective(s)
		if err != nil {
			return Optimal, err
		}
		slog.Debug("dual iteration", "iter", s.iter, "objective", obj)

		leavingRow, found := chooseEntering(s.xBasic)
		if !found {
			return Optimal, nil
		}

		dz, err := btran(s, leavingRow)
		if err != nil {
			return Optimal, err
		}

		enteringVar, found, err := chooseLeaving(s.zNonBasic, dz)
		if err != nil {
			return Optimal, err
		}
		if !found {
			slog.Warn("model is unbounded")
			return Unbounded, nil
		}

		enteringCol, err := s.N.Slice(matrix.EmptyRange(), col(enteringVar))
		if err != nil {
			return Optimal, err
		}
		dx, err := linalg.Solve(s.B, enteringCol)
		if err != nil {
			return Optimal, err
		}

		if err := applyPivot(s, enteringVar, leavingRow, dx, dz); err != nil {
			return Optimal, err
		}
	}

	slog.Warn("iteration limit reached", "limit", maxIter)
	return IterationLimit, nil
}

// btran computes dz = -1 * transpose(inv(B)*N) * e_row, i.e. one row
// of the simplex multipliers, via a transposed Gaussian solve rather
// than an explicit inverse of B.
func btran(s *state, row int) (*matrix.Dense[float64], error) {
	ei, err := matrix.New[float64](s.B.Rows(), 1)
	if err != nil {
		return nil, err
	}
	if err := ei.Set(row, 0, 1); err != nil {
		return nil, err
	}

	v, err := linalg.Solve(s.B.MakeTranspose(), ei)
	if err != nil {
		return nil, err
	}
	dz, err := s.N.MakeTranspose().MulMatrix(v)
	if err != nil {
		return nil, err
	}
	return dz.MulScalar(-1), nil
}

// applyPivot updates the primal and dual solutions for an entering/
// leaving pair and swaps them in the basis. dx is FTRAN's result
// (inv(B)*N column for the variable that changes basic-ness along the
// primal direction) and dz is BTRAN's result (the corresponding dual
// direction); which of entering/leaving each is computed against
// differs between solvePrimal and solveDual, but the update itself is
// identical once dx and dz are in hand.
func applyPivot(s *state, entering, leaving int, dx, dz *matrix.Dense[float64]) error {
	xLeaving, err := s.xBasic.At(leaving, 0)
	if err != nil {
		return err
	}
	dxLeaving, err := dx.At(leaving, 0)
	if err != nil {
		return err
	}
	t := xLeaving / dxLeaving

	zEntering, err := s.zNonBasic.At(entering, 0)
	if err != nil {
		return err
	}
	dzEntering, err := dz.At(entering, 0)
	if err != nil {
		return err
	}
	step := zEntering / dzEntering

	if err := updateVector(s.xBasic, dx, t, leaving); err != nil {
		return err
	}
	if err := updateVector(s.zNonBasic, dz, step, entering); err != nil {
		return err
	}

	enteringOrigCol, err := s.A.Slice(matrix.EmptyRange(), col(s.nonBasics[entering].index))
	if err != nil {
		return err
	}
	if err := s.B.Update(matrix.EmptyRange(), col(leaving), enteringOrigCol); err != nil {
		return err
	}

	leavingOrigCol, err := s.A.Slice(matrix.EmptyRange(), col(s.basics[leaving].index))
	if err != nil {
		return err
	}
	if err := s.N.Update(matrix.EmptyRange(), col(entering), leavingOrigCol); err != nil {
		return err
	}

	s.basics[leaving], s.nonBasics[entering] = s.nonBasics[entering], s.basics[leaving]
	return nil
}

// updateVector computes vec = vec - step*delta, then overwrites row
// pivotRow with step (the new value of the variable that just
// switched basic-ness).
func updateVector(vec, delta *matrix.Dense[float64], step float64, pivotRow int) error {
	scaled := delta.MulScalar(step)
	updated, err := vec.Sub(scaled)
	if err != nil {
		return err
	}
	if err := updated.Set(pivotRow, 0, step); err != nil {
		return err
	}
	return vec.Update(matrix.EmptyRange(), matrix.EmptyRange(), updated)
}

func extractSolution(model *jsolve.Model, s *state) (*jsolve.Solution, error) {
	primal, err := primalObjective(s)
	if err != nil {
		return nil, err
	}

	objective := primal
	if model.Sense() == jsolve.Min {
		objective = -primal
	}

	variables := make(map[string]float64)
	for i, basic := range s.basics {
		if s.isSlack(basic.index) {
			continue
		}
		xi, err := s.xBasic.At(i, 0)
		if err != nil {
			return nil, err
		}
		variables[s.columnNames[basic.index]] = xi
	}
	for _, nb := range s.nonBasics {
		if s.isSlack(nb.index) {
			continue
		}
		if _, already := variables[s.columnNames[nb.index]]; !already {
			variables[s.columnNames[nb.index]] = 0
		}
	}

	return &jsolve.Solution{Objective: objective, Variables: variables}, nil
}
