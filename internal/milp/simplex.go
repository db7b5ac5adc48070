package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexSolver solves the linear relaxation of a model with gonum's
// simplex method. It needs no solver library installed, which keeps tests
// self-contained; integer kinds are relaxed to their continuous bounds.
// The constraint matrix is dense, so it only suits small models.
type SimplexSolver struct {
	// Tol is the convergence tolerance of the simplex routine. Zero
	// means 1e-7.
	Tol float64
}

var _ Solver = (*SimplexSolver)(nil)

func (s *SimplexSolver) Solve(m *Model) (*Solution, error) {
	n := m.NumVars()
	if n == 0 {
		return nil, fmt.Errorf("simplex: model %q has no variables", m.Name())
	}

	c := make([]float64, n)
	for j := 0; j < n; j++ {
		c[j] = m.ObjCoef(Var(j))
	}

	// General form: minimize c'x subject to Gx <= h and Ax = b. Variable
	// bounds become rows because the conversion below treats x as free.
	var (
		ineq [][]float64
		h    []float64
		eq   [][]float64
		b    []float64
	)
	dense := func(terms []Term, scale float64) []float64 {
		row := make([]float64, n)
		for _, t := range terms {
			row[t.Var] += scale * t.Coef
		}
		return row
	}
	unit := func(j int, scale float64) []float64 {
		row := make([]float64, n)
		row[j] = scale
		return row
	}

	for _, r := range m.Rows() {
		if r.Lo == r.Hi {
			eq = append(eq, dense(r.Terms, 1))
			b = append(b, r.Lo)
			continue
		}
		if !math.IsInf(r.Hi, 1) {
			ineq = append(ineq, dense(r.Terms, 1))
			h = append(h, r.Hi)
		}
		if !math.IsInf(r.Lo, -1) {
			ineq = append(ineq, dense(r.Terms, -1))
			h = append(h, -r.Lo)
		}
	}
	for j := 0; j < n; j++ {
		lo, hi := m.Bounds(Var(j))
		if lo == hi {
			eq = append(eq, unit(j, 1))
			b = append(b, lo)
			continue
		}
		if !math.IsInf(hi, 1) {
			ineq = append(ineq, unit(j, 1))
			h = append(h, hi)
		}
		if !math.IsInf(lo, -1) {
			ineq = append(ineq, unit(j, -1))
			h = append(h, -lo)
		}
	}

	var g, a mat.Matrix
	if len(ineq) > 0 {
		g = denseRows(ineq, n)
	}
	if len(eq) > 0 {
		a = denseRows(eq, n)
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, a, b)

	tol := s.Tol
	if tol == 0 {
		tol = 1e-7
	}
	opt, sol, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &Solution{Status: StatusInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return nil, fmt.Errorf("simplex: %w", err)
	}

	out := &Solution{
		Status:    StatusOptimal,
		Objective: opt + m.ObjConst(),
		Values:    make([]float64, n),
	}
	// Standard form splits each variable into positive and negative
	// parts: x[j] = xNew[j] - xNew[n+j].
	for j := 0; j < n; j++ {
		out.Values[j] = sol[j] - sol[n+j]
	}
	return out, nil
}

func denseRows(rows [][]float64, n int) *mat.Dense {
	d := mat.NewDense(len(rows), n, nil)
	for i, r := range rows {
		d.SetRow(i, r)
	}
	return d
}
