package balance

import (
	"errors"
	"fmt"
	"time"

	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
)

// ErrInfeasible reports that the solver found no feasible point for the
// scenario. There is no relaxation or retry; the run is over.
var ErrInfeasible = errors.New("balance: model is infeasible")

// ShapeSource supplies the normalized volatile load shape, one weight
// per hour of a profile year.
type ShapeSource interface {
	NormalizedShape() ([]float64, error)
}

// StorageSource supplies the physical storage capacity and the hourly
// historic fill trajectory anchoring the start of the horizon.
type StorageSource interface {
	StorageAnchor() (capacity float64, anchor []float64, err error)
}

// Run stages in emission order.
const (
	StageStorage   = "storage"
	StageProfiles  = "profiles"
	StageFormulate = "formulate"
	StageSolve     = "solve"
	StageAssemble  = "assemble"
)

// StageEvent marks progress through one run.
type StageEvent struct {
	Scenario string `json:"scenario"`
	Stage    string `json:"stage"`
	Detail   string `json:"detail,omitempty"`
}

// Callback receives run events. Implementations must not block for long;
// the run executes on the caller's goroutine.
type Callback interface {
	OnStage(e StageEvent)
	OnSummary(s Summary)
}

// Result is everything one solved scenario produces.
type Result struct {
	Scenario  model.Scenario
	Name      string
	Status    milp.Status
	Objective float64

	Rows    []Row
	Params  []Param
	Summary Summary
}

// Runner wires the collaborators of the balance pipeline together. Each
// Run builds its own series and model and discards them on return, so a
// single Runner can execute any number of scenarios back to back.
type Runner struct {
	Shapes  ShapeSource
	Storage StorageSource
	Solver  milp.Solver

	// Callback receives stage and summary events; nil disables them.
	Callback Callback

	// Horizon overrides the default 1.5 year index, mainly for tests.
	Horizon model.HourlyIndex
}

// Run executes one scenario over the runner's horizon.
func (r *Runner) Run(sc model.Scenario) (*Result, error) {
	ix := r.Horizon
	if ix.N == 0 {
		ix = model.DefaultHorizon()
	}
	name := sc.Name()

	r.stage(name, StageStorage, "")
	capacity, anchor, err := r.Storage.StorageAnchor()
	if err != nil {
		return nil, fmt.Errorf("loading storage anchor: %w", err)
	}

	r.stage(name, StageProfiles, "")
	shape, err := r.Shapes.NormalizedShape()
	if err != nil {
		return nil, fmt.Errorf("loading load shape: %w", err)
	}
	profiles, err := profile.BuildOn(ix, sc, shape)
	if err != nil {
		return nil, fmt.Errorf("building profiles: %w", err)
	}

	r.stage(name, StageFormulate, fmt.Sprintf("%d hours", ix.Len()))
	m, vars, err := BuildModel(profiles, anchor, capacity, sc.UseSocSlack)
	if err != nil {
		return nil, fmt.Errorf("formulating model: %w", err)
	}

	r.stage(name, StageSolve, fmt.Sprintf("%d vars, %d rows", m.NumVars(), m.NumRows()))
	started := time.Now()
	sol, err := r.Solver.Solve(m)
	if err != nil {
		return nil, fmt.Errorf("solving: %w", err)
	}
	solveSeconds := time.Since(started).Seconds()

	switch sol.Status {
	case milp.StatusOptimal:
	case milp.StatusInfeasible:
		return nil, fmt.Errorf("%w: scenario %s", ErrInfeasible, name)
	default:
		return nil, fmt.Errorf("solver finished with status %s for scenario %s", sol.Status, name)
	}

	r.stage(name, StageAssemble, "")
	rows := assembleRows(profiles, vars, sol)
	res := &Result{
		Scenario:  sc,
		Name:      name,
		Status:    sol.Status,
		Objective: sol.Objective,
		Rows:      rows,
		Params:    EchoParams(sc, capacity),
		Summary:   summarize(name, rows, vars, sol, solveSeconds),
	}
	if r.Callback != nil {
		r.Callback.OnSummary(res.Summary)
	}
	return res, nil
}

func (r *Runner) stage(scenario, stage, detail string) {
	if r.Callback == nil {
		return
	}
	r.Callback.OnStage(StageEvent{Scenario: scenario, Stage: stage, Detail: detail})
}
