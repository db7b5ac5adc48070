package balance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
	"gas_balance/internal/storage"
)

// fakeSolver returns a canned solution and records the model it saw.
type fakeSolver struct {
	status milp.Status
	value  float64
	err    error

	model *milp.Model
	calls int
}

func (f *fakeSolver) Solve(m *milp.Model) (*milp.Solution, error) {
	f.model = m
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	sol := &milp.Solution{Status: f.status}
	if f.status == milp.StatusOptimal || f.status == milp.StatusFeasible {
		sol.Values = make([]float64, m.NumVars())
		for i := range sol.Values {
			sol.Values[i] = f.value
		}
	}
	return sol, nil
}

// eventRecorder collects callback events in order.
type eventRecorder struct {
	stages    []StageEvent
	summaries []Summary
}

func (e *eventRecorder) OnStage(ev StageEvent) { e.stages = append(e.stages, ev) }
func (e *eventRecorder) OnSummary(s Summary)   { e.summaries = append(e.summaries, s) }

func testRunner(solver milp.Solver, cb Callback) *Runner {
	shape := make(profile.StaticShape, model.HoursPerYear)
	for i := range shape {
		shape[i] = 1.0 / model.HoursPerYear
	}
	return &Runner{
		Shapes:   shape,
		Storage:  storage.Static{Capacity: 1100, Anchor: []float64{500, 500}},
		Solver:   solver,
		Callback: cb,
		Horizon:  model.HourlyIndex{Start: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), N: 4},
	}
}

func TestRunnerOptimal(t *testing.T) {
	solver := &fakeSolver{status: milp.StatusOptimal, value: 0.25}
	rec := &eventRecorder{}
	r := testRunner(solver, rec)

	sc := model.DefaultScenario()
	res, err := r.Run(sc)
	require.NoError(t, err)

	assert.Equal(t, milp.StatusOptimal, res.Status)
	assert.Equal(t, sc.Name(), res.Name)
	require.Len(t, res.Rows, 4)

	// Every solved flow carries the canned value; series come from the
	// profiles.
	for _, row := range res.Rows {
		assert.InDelta(t, 926.0/8760, row.DomDem, 1e-12)
		assert.Equal(t, 0.25, row.DomDemServed)
		assert.Equal(t, 0.25, row.Soc)
	}

	// Echo ends with capacity and the slack toggle.
	require.NotEmpty(t, res.Params)
	assert.Equal(t, "storCap", res.Params[len(res.Params)-2].Key)
	assert.Equal(t, "1100", res.Params[len(res.Params)-2].Value)
	assert.Equal(t, "use_soc_slack", res.Params[len(res.Params)-1].Key)

	// Stage events in pipeline order, then the summary.
	var stages []string
	for _, ev := range rec.stages {
		stages = append(stages, ev.Stage)
	}
	assert.Equal(t, []string{StageStorage, StageProfiles, StageFormulate, StageSolve, StageAssemble}, stages)
	require.Len(t, rec.summaries, 1)
	assert.Equal(t, res.Summary, rec.summaries[0])
	assert.Equal(t, "optimal", res.Summary.Status)
}

func TestRunnerMissingValuesReadAsZero(t *testing.T) {
	// An optimal status without values models a solver that dropped
	// columns; assembly fills zeros instead of NaN.
	solver := &fakeSolver{status: milp.StatusOptimal}
	r := testRunner(solver, nil)
	r.Solver = solverWithoutValues{}

	res, err := r.Run(model.DefaultScenario())
	require.NoError(t, err)
	for _, row := range res.Rows {
		assert.Equal(t, 0.0, row.DomDemServed)
		assert.Equal(t, 0.0, row.Soc)
		assert.Equal(t, 0.0, row.SocSlack)
	}
}

type solverWithoutValues struct{}

func (solverWithoutValues) Solve(m *milp.Model) (*milp.Solution, error) {
	return &milp.Solution{Status: milp.StatusOptimal}, nil
}

func TestRunnerInfeasible(t *testing.T) {
	solver := &fakeSolver{status: milp.StatusInfeasible}
	r := testRunner(solver, nil)

	_, err := r.Run(model.DefaultScenario())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestRunnerUnexpectedStatus(t *testing.T) {
	solver := &fakeSolver{status: milp.StatusUnbounded}
	r := testRunner(solver, nil)

	_, err := r.Run(model.DefaultScenario())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInfeasible)
	assert.ErrorContains(t, err, "unbounded")
}

func TestRunnerSolverError(t *testing.T) {
	solver := &fakeSolver{err: errors.New("backend crashed")}
	r := testRunner(solver, nil)

	_, err := r.Run(model.DefaultScenario())
	assert.ErrorContains(t, err, "backend crashed")
}

func TestRunnerStorageFailsBeforeSolve(t *testing.T) {
	solver := &fakeSolver{status: milp.StatusOptimal}
	r := testRunner(solver, nil)
	r.Storage = failingStorage{}

	_, err := r.Run(model.DefaultScenario())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrYearNotFound)
	assert.Equal(t, 0, solver.calls)
}

type failingStorage struct{}

func (failingStorage) StorageAnchor() (float64, []float64, error) {
	return 0, nil, storage.ErrYearNotFound
}

func TestRunnerShapeError(t *testing.T) {
	solver := &fakeSolver{status: milp.StatusOptimal}
	r := testRunner(solver, nil)
	r.Shapes = profile.StaticShape(make([]float64, 10))

	_, err := r.Run(model.DefaultScenario())
	assert.ErrorContains(t, err, "8760")
	assert.Equal(t, 0, solver.calls)
}

func TestSweepGrid(t *testing.T) {
	base := model.DefaultScenario()
	grid := SweepGrid(base, []float64{0, 0.5}, []float64{0, 965})

	require.Len(t, grid, 4)
	assert.Equal(t, 0.0, grid[0].RussianShare)
	assert.Equal(t, 0.0, grid[0].LNGAddImport)
	assert.Equal(t, 0.0, grid[1].RussianShare)
	assert.Equal(t, 965.0, grid[1].LNGAddImport)
	assert.Equal(t, 0.5, grid[2].RussianShare)
	assert.Equal(t, 0.0, grid[2].LNGAddImport)

	// Everything else stays on the base parameterization.
	assert.Equal(t, base.TotalImport, grid[3].TotalImport)
	assert.Equal(t, base.ImportStopDate, grid[3].ImportStopDate)
}
