// Package milp represents mixed-integer linear programs as plain data:
// variables with bounds, rows of linear terms and a minimizing objective.
// Solver backends translate the model without interpreting its meaning.
package milp

import "math"

// Var is a handle to a model variable.
type Var int

// VarKind distinguishes continuous from binary variables.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

type variable struct {
	name string
	kind VarKind
	lo   float64
	hi   float64
}

// Term is one linear coefficient of a row.
type Term struct {
	Var  Var
	Coef float64
}

// Row is a linear constraint with inclusive bounds. Lo == Hi encodes an
// equality; an infinite bound leaves that side open.
type Row struct {
	Name  string
	Terms []Term
	Lo    float64
	Hi    float64
}

// Model is a minimization program under construction. It is not safe for
// concurrent mutation.
type Model struct {
	name     string
	vars     []variable
	rows     []Row
	objCoefs []float64
	objConst float64
}

func New(name string) *Model {
	return &Model{name: name}
}

func (m *Model) Name() string { return m.name }

// AddVar adds a continuous variable bounded to [0, +inf).
func (m *Model) AddVar(name string) Var {
	return m.add(variable{name: name, kind: Continuous, lo: 0, hi: math.Inf(1)})
}

// AddBinary adds a {0, 1} variable.
func (m *Model) AddBinary(name string) Var {
	return m.add(variable{name: name, kind: Binary, lo: 0, hi: 1})
}

func (m *Model) add(v variable) Var {
	m.vars = append(m.vars, v)
	m.objCoefs = append(m.objCoefs, 0)
	return Var(len(m.vars) - 1)
}

// Fix pins a variable to an exact value.
func (m *Model) Fix(v Var, value float64) {
	m.vars[v].lo = value
	m.vars[v].hi = value
}

// SetObjCoef replaces the objective coefficient of v.
func (m *Model) SetObjCoef(v Var, coef float64) {
	m.objCoefs[v] = coef
}

// AddObjCoef accumulates onto the objective coefficient of v.
func (m *Model) AddObjCoef(v Var, coef float64) {
	m.objCoefs[v] += coef
}

// AddObjConst accumulates a constant offset carried through to reported
// objective values.
func (m *Model) AddObjConst(c float64) {
	m.objConst += c
}

// AddLE adds the row terms ≤ rhs. The model takes ownership of terms.
func (m *Model) AddLE(name string, terms []Term, rhs float64) {
	m.rows = append(m.rows, Row{Name: name, Terms: terms, Lo: math.Inf(-1), Hi: rhs})
}

// AddGE adds the row terms ≥ rhs.
func (m *Model) AddGE(name string, terms []Term, rhs float64) {
	m.rows = append(m.rows, Row{Name: name, Terms: terms, Lo: rhs, Hi: math.Inf(1)})
}

// AddEQ adds the row terms = rhs.
func (m *Model) AddEQ(name string, terms []Term, rhs float64) {
	m.rows = append(m.rows, Row{Name: name, Terms: terms, Lo: rhs, Hi: rhs})
}

// AddRange adds the row lo ≤ terms ≤ hi.
func (m *Model) AddRange(name string, terms []Term, lo, hi float64) {
	m.rows = append(m.rows, Row{Name: name, Terms: terms, Lo: lo, Hi: hi})
}

func (m *Model) NumVars() int { return len(m.vars) }

func (m *Model) NumRows() int { return len(m.rows) }

func (m *Model) VarName(v Var) string { return m.vars[v].name }

func (m *Model) Kind(v Var) VarKind { return m.vars[v].kind }

// Bounds returns the inclusive domain of v.
func (m *Model) Bounds(v Var) (lo, hi float64) {
	return m.vars[v].lo, m.vars[v].hi
}

// Rows exposes the constraint rows for backends and tests. Callers must
// not mutate the returned slice.
func (m *Model) Rows() []Row { return m.rows }

// FindRow returns the first row with the given name, for tests and
// diagnostics.
func (m *Model) FindRow(name string) (Row, bool) {
	for _, r := range m.rows {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

func (m *Model) ObjCoef(v Var) float64 { return m.objCoefs[v] }

func (m *Model) ObjConst() float64 { return m.objConst }

// HasInteger reports whether any variable is non-continuous.
func (m *Model) HasInteger() bool {
	for _, v := range m.vars {
		if v.kind != Continuous {
			return true
		}
	}
	return false
}
