package milp

import "math"

// Status is the outcome class of a solve.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Solution carries the solve outcome. Values is indexed by Var and is only
// populated for optimal or feasible statuses.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Value returns the solved value of v, or NaN when the solution carries no
// value for it.
func (s *Solution) Value(v Var) float64 {
	if v < 0 || int(v) >= len(s.Values) {
		return math.NaN()
	}
	return s.Values[v]
}

// Solver turns a model into a solution. Implementations are stateless with
// respect to the model and may be reused across solves.
type Solver interface {
	Solve(m *Model) (*Solution, error)
}
