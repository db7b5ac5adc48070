package balance

import "gas_balance/internal/model"

// SweepGrid expands a base scenario into the cross product of Russian
// share retention and LNG capacity increments, in row-major order.
// Every variant is an independent scenario; running them is a loop over
// Runner.Run.
func SweepGrid(base model.Scenario, russShares, lngAdds []float64) []model.Scenario {
	out := make([]model.Scenario, 0, len(russShares)*len(lngAdds))
	for _, rs := range russShares {
		for _, lng := range lngAdds {
			sc := base
			sc.RussianShare = rs
			sc.LNGAddImport = lng
			out = append(out, sc)
		}
	}
	return out
}
