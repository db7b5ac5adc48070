package milp

import (
	"fmt"
	"math"

	"github.com/lukpank/go-glpk/glpk"
)

// GLPKSolver solves models with the GNU Linear Programming Kit through cgo.
// The zero value is ready to use and keeps GLPK output at error level.
type GLPKSolver struct {
	// Verbose switches GLPK terminal output to the full log.
	Verbose bool
}

var _ Solver = (*GLPKSolver)(nil)

// Solve translates the model column by column and row by row, runs the
// simplex method and, when integer variables are present, branch-and-cut
// on top of the relaxation.
func (s *GLPKSolver) Solve(m *Model) (*Solution, error) {
	n := m.NumVars()
	if n == 0 {
		return nil, fmt.Errorf("glpk: model %q has no variables", m.Name())
	}

	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName(m.Name())
	lp.SetObjDir(glpk.ObjDir(glpk.MIN))

	lp.AddCols(n)
	for j := 0; j < n; j++ {
		v := Var(j)
		col := j + 1
		lp.SetColName(col, m.VarName(v))
		if m.Kind(v) == Binary {
			lp.SetColKind(col, glpk.VarType(glpk.BV))
		}
		// Bounds go after the kind: marking a column binary resets its
		// bounds to the unit interval.
		typ, lo, hi := glpkBounds(m.Bounds(v))
		lp.SetColBnds(col, typ, lo, hi)
		if c := m.ObjCoef(v); c != 0 {
			lp.SetObjCoef(col, c)
		}
	}

	rows := m.Rows()
	if len(rows) > 0 {
		lp.AddRows(len(rows))
	}
	for i, row := range rows {
		ri := i + 1
		lp.SetRowName(ri, row.Name)
		typ, lo, hi := glpkBounds(row.Lo, row.Hi)
		lp.SetRowBnds(ri, typ, lo, hi)
		ind := make([]int32, len(row.Terms))
		val := make([]float64, len(row.Terms))
		for k, t := range row.Terms {
			ind[k] = int32(t.Var) + 1
			val[k] = t.Coef
		}
		lp.SetMatRow(ri, ind, val)
	}

	msgLev := glpk.MsgLev(glpk.MSG_ERR)
	if s.Verbose {
		msgLev = glpk.MsgLev(glpk.MSG_ON)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(msgLev)
	if err := lp.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("glpk simplex: %w", err)
	}
	switch lp.Status() {
	case glpk.NOFEAS, glpk.INFEAS:
		return &Solution{Status: StatusInfeasible}, nil
	case glpk.UNBND:
		return &Solution{Status: StatusUnbounded}, nil
	}

	if !m.HasInteger() {
		sol := &Solution{
			Status:    StatusOptimal,
			Objective: lp.ObjVal() + m.ObjConst(),
			Values:    make([]float64, n),
		}
		if lp.Status() != glpk.OPT {
			sol.Status = StatusFeasible
		}
		for j := 0; j < n; j++ {
			sol.Values[j] = lp.ColPrim(j + 1)
		}
		return sol, nil
	}

	iocp := glpk.NewIocp()
	iocp.SetPresolve(true)
	iocp.SetMsgLev(msgLev)
	if err := lp.Intopt(iocp); err != nil {
		return nil, fmt.Errorf("glpk intopt: %w", err)
	}

	var status Status
	switch lp.MipStatus() {
	case glpk.OPT:
		status = StatusOptimal
	case glpk.FEAS:
		status = StatusFeasible
	case glpk.NOFEAS:
		return &Solution{Status: StatusInfeasible}, nil
	default:
		return &Solution{Status: StatusUnknown}, nil
	}

	sol := &Solution{
		Status:    status,
		Objective: lp.MipObjVal() + m.ObjConst(),
		Values:    make([]float64, n),
	}
	for j := 0; j < n; j++ {
		sol.Values[j] = lp.MipColVal(j + 1)
	}
	return sol, nil
}

// glpkBounds maps inclusive [lo, hi] bounds onto a GLPK bounds type.
func glpkBounds(lo, hi float64) (glpk.BndsType, float64, float64) {
	loInf := math.IsInf(lo, -1)
	hiInf := math.IsInf(hi, 1)
	switch {
	case loInf && hiInf:
		return glpk.BndsType(glpk.FR), 0, 0
	case loInf:
		return glpk.BndsType(glpk.UP), 0, hi
	case hiInf:
		return glpk.BndsType(glpk.LO), lo, 0
	case lo == hi:
		return glpk.BndsType(glpk.FX), lo, hi
	default:
		return glpk.BndsType(glpk.DB), lo, hi
	}
}
