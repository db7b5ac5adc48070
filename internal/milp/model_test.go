package milp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelVariables(t *testing.T) {
	m := New("vars")

	x := m.AddVar("x")
	b := m.AddBinary("flag")

	assert.Equal(t, 2, m.NumVars())
	assert.Equal(t, "x", m.VarName(x))
	assert.Equal(t, "flag", m.VarName(b))
	assert.Equal(t, Continuous, m.Kind(x))
	assert.Equal(t, Binary, m.Kind(b))

	// Continuous variables start non-negative and unbounded above.
	lo, hi := m.Bounds(x)
	assert.Equal(t, 0.0, lo)
	assert.True(t, math.IsInf(hi, 1))

	lo, hi = m.Bounds(b)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestModelFix(t *testing.T) {
	m := New("fix")
	x := m.AddVar("x")

	m.Fix(x, 3.5)

	lo, hi := m.Bounds(x)
	assert.Equal(t, 3.5, lo)
	assert.Equal(t, 3.5, hi)
}

func TestModelObjective(t *testing.T) {
	m := New("obj")
	x := m.AddVar("x")
	y := m.AddVar("y")

	m.SetObjCoef(x, 2)
	m.AddObjCoef(x, 0.5)
	m.AddObjCoef(y, -1)
	m.AddObjConst(10)
	m.AddObjConst(-2.5)

	assert.Equal(t, 2.5, m.ObjCoef(x))
	assert.Equal(t, -1.0, m.ObjCoef(y))
	assert.Equal(t, 7.5, m.ObjConst())
}

func TestModelRows(t *testing.T) {
	m := New("rows")
	x := m.AddVar("x")
	y := m.AddVar("y")

	m.AddLE("cap", []Term{{x, 1}, {y, 2}}, 8)
	m.AddGE("floor", []Term{{x, 1}}, 1)
	m.AddEQ("link", []Term{{x, 1}, {y, -1}}, 0)
	m.AddRange("band", []Term{{y, 1}}, 2, 4)

	require.Equal(t, 4, m.NumRows())

	cap, ok := m.FindRow("cap")
	require.True(t, ok)
	assert.True(t, math.IsInf(cap.Lo, -1))
	assert.Equal(t, 8.0, cap.Hi)
	assert.Len(t, cap.Terms, 2)

	floor, ok := m.FindRow("floor")
	require.True(t, ok)
	assert.Equal(t, 1.0, floor.Lo)
	assert.True(t, math.IsInf(floor.Hi, 1))

	link, ok := m.FindRow("link")
	require.True(t, ok)
	assert.Equal(t, 0.0, link.Lo)
	assert.Equal(t, 0.0, link.Hi)

	band, ok := m.FindRow("band")
	require.True(t, ok)
	assert.Equal(t, 2.0, band.Lo)
	assert.Equal(t, 4.0, band.Hi)

	_, ok = m.FindRow("missing")
	assert.False(t, ok)
}

func TestModelHasInteger(t *testing.T) {
	m := New("lp")
	m.AddVar("x")
	assert.False(t, m.HasInteger())

	m.AddBinary("flag")
	assert.True(t, m.HasInteger())
}

func TestSolutionValue(t *testing.T) {
	sol := &Solution{Status: StatusOptimal, Values: []float64{1, 2}}

	assert.Equal(t, 1.0, sol.Value(0))
	assert.Equal(t, 2.0, sol.Value(1))
	assert.True(t, math.IsNaN(sol.Value(2)))
	assert.True(t, math.IsNaN(sol.Value(-1)))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "feasible", StatusFeasible.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "unbounded", StatusUnbounded.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
