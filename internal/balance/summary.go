package balance

import (
	"gonum.org/v1/gonum/floats"

	"gas_balance/internal/milp"
	"gas_balance/internal/model"
)

// StreamSummary aggregates one stream over the whole horizon, TWh.
// For supply streams Demand holds the available volume and Flagged
// stays false; the indicator binaries only exist for demand.
type StreamSummary struct {
	Stream   model.Stream `json:"stream"`
	Demand   float64      `json:"demand_twh"`
	Served   float64      `json:"served_twh"`
	Unserved float64      `json:"unserved_twh"`
	Flagged  bool         `json:"flagged"`
}

// Summary condenses a solved run for log lines, streamed events and
// metrics.
type Summary struct {
	Scenario  string `json:"scenario"`
	Status    string `json:"status"`
	Objective float64 `json:"objective"`

	Demand []StreamSummary `json:"demand"`
	Supply []StreamSummary `json:"supply"`

	InitialSoc   float64 `json:"initial_soc_twh"`
	FinalSoc     float64 `json:"final_soc_twh"`
	SlackTotal   float64 `json:"slack_total_twh"`
	SolveSeconds float64 `json:"solve_seconds"`
}

// summarize totals the assembled rows per stream and reads the unserved
// flags out of the solution.
func summarize(name string, rows []Row, v *Variables, sol *milp.Solution, solveSeconds float64) Summary {
	s := Summary{
		Scenario:     name,
		Status:       sol.Status.String(),
		Objective:    sol.Objective,
		SolveSeconds: solveSeconds,
	}
	if len(rows) == 0 {
		return s
	}

	demand := make([]float64, len(rows))
	served := make([]float64, len(rows))
	slack := make([]float64, len(rows))
	for i, r := range rows {
		slack[i] = r.SocSlack
	}

	collect := func(st model.Stream, dem, srv func(Row) float64) StreamSummary {
		for i, r := range rows {
			demand[i] = dem(r)
			served[i] = srv(r)
		}
		out := StreamSummary{
			Stream: st,
			Demand: floats.Sum(demand),
			Served: floats.Sum(served),
		}
		out.Unserved = out.Demand - out.Served
		if flag, ok := v.UnservedFlags[st]; ok {
			out.Flagged = solved(sol, flag) > 0.5
		}
		return out
	}

	s.Demand = []StreamSummary{
		collect(model.StreamDomDem, func(r Row) float64 { return r.DomDem }, func(r Row) float64 { return r.DomDemServed }),
		collect(model.StreamElecDem, func(r Row) float64 { return r.ElecDem }, func(r Row) float64 { return r.ElecDemServed }),
		collect(model.StreamIndDem, func(r Row) float64 { return r.IndDem }, func(r Row) float64 { return r.IndDemServed }),
		collect(model.StreamGHDDem, func(r Row) float64 { return r.GHDDem }, func(r Row) float64 { return r.GHDDemServed }),
		collect(model.StreamExpAndOther, func(r Row) float64 { return r.ExpAndOther }, func(r Row) float64 { return r.ExpAndOtherServed }),
	}
	s.Supply = []StreamSummary{
		collect(model.StreamPipeImp, func(r Row) float64 { return r.PipeImp }, func(r Row) float64 { return r.PipeImpServed }),
		collect(model.StreamLNGImp, func(r Row) float64 { return r.LNGImp }, func(r Row) float64 { return r.LNGImpServed }),
	}

	s.InitialSoc = rows[0].Soc
	s.FinalSoc = rows[len(rows)-1].Soc
	s.SlackTotal = floats.Sum(slack)
	return s
}
