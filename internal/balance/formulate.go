// Package balance turns scenario profiles into an hourly storage balance
// program, runs it through a solver and assembles the solved flows into
// the result table. Runs are strictly sequential and leave no state
// behind, so sweeping a parameter grid is just a loop.
package balance

import (
	"fmt"
	"math"

	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
)

const (
	// annualDiscountRate discounts later unserved demand, compounded
	// hourly over the profile year.
	annualDiscountRate = 0.06

	// anchorBandTWh is the corridor half-width around the historic
	// storage trajectory.
	anchorBandTWh = 10.0

	// storageWeight rewards storage fill, averaged over the horizon and
	// normalized by capacity so the reward stays below any unserved
	// penalty.
	storageWeight = 0.5
)

// unservedWeights price a TWh of unserved demand per stream, relative to
// curtailed exports.
var unservedWeights = map[model.Stream]float64{
	model.StreamExpAndOther: 1.0,
	model.StreamIndDem:      1.5,
	model.StreamElecDem:     2.0,
	model.StreamDomDem:      2.5,
	model.StreamGHDDem:      2.5,
}

// Variables maps solver columns back to their meaning. The hour-indexed
// slices run over 0..H where H is the horizon length; rows of the program
// only bind indices below H, the trailing element exists for the storage
// level after the last hour.
type Variables struct {
	Soc      []milp.Var // storage fill at hour starts, TWh
	SocSlack []milp.Var // penalized balance injections, TWh per hour

	DomServed  []milp.Var
	ElecServed []milp.Var
	IndServed  []milp.Var
	GHDServed  []milp.Var
	ExpServed  []milp.Var

	PipeServed []milp.Var
	LNGServed  []milp.Var

	// UnservedFlags raise per demand stream when the run leaves any of
	// that stream unserved.
	UnservedFlags map[model.Stream]milp.Var

	// NegOffset is retained in the column layout although nothing
	// constrains or prices it.
	NegOffset milp.Var
}

// Served returns the served-energy columns of one stream.
func (v *Variables) Served(s model.Stream) []milp.Var {
	switch s {
	case model.StreamDomDem:
		return v.DomServed
	case model.StreamElecDem:
		return v.ElecServed
	case model.StreamIndDem:
		return v.IndServed
	case model.StreamGHDDem:
		return v.GHDServed
	case model.StreamExpAndOther:
		return v.ExpServed
	case model.StreamPipeImp:
		return v.PipeServed
	case model.StreamLNGImp:
		return v.LNGServed
	default:
		return nil
	}
}

// BuildModel formulates the balance program for one scenario: hourly
// storage dynamics against the seven profile series, a corridor around
// the historic storage trajectory, and an objective that prices unserved
// demand per stream, discounted so early shortfalls hurt more.
func BuildModel(p *profile.Profiles, anchor []float64, capacity float64, useSlack bool) (*milp.Model, *Variables, error) {
	h := p.Index.Len()
	if h < 1 {
		return nil, nil, fmt.Errorf("formulate: empty horizon")
	}
	if capacity <= 0 {
		return nil, nil, fmt.Errorf("formulate: storage capacity %g must be positive", capacity)
	}
	for s, series := range map[model.Stream][]float64{
		model.StreamDomDem:      p.DomDem,
		model.StreamElecDem:     p.ElecDem,
		model.StreamIndDem:      p.IndDem,
		model.StreamGHDDem:      p.GHDDem,
		model.StreamExpAndOther: p.ExpAndOther,
		model.StreamPipeImp:     p.PipeImp,
		model.StreamLNGImp:      p.LNGImp,
	} {
		if len(series) != h {
			return nil, nil, fmt.Errorf("formulate: %s series has %d hours, want %d", s, len(series), h)
		}
	}

	m := milp.New("gas_balance")
	v := &Variables{UnservedFlags: make(map[model.Stream]milp.Var, len(model.DemandStreams))}

	v.Soc = hourSeries(m, "soc", h+1)
	v.SocSlack = hourSeries(m, "soc_slack", h+1)
	v.DomServed = hourSeries(m, "domDem_served", h+1)
	v.ElecServed = hourSeries(m, "elecDem_served", h+1)
	v.IndServed = hourSeries(m, "indDem_served", h+1)
	v.GHDServed = hourSeries(m, "ghdDem_served", h+1)
	v.ExpServed = hourSeries(m, "expAndOther_served", h+1)
	v.PipeServed = hourSeries(m, "pipeImp_served", h+1)
	v.LNGServed = hourSeries(m, "lngImp_served", h+1)

	for _, s := range model.DemandStreams {
		v.UnservedFlags[s] = m.AddBinary(fmt.Sprintf("%s_unserved", s))
	}
	v.NegOffset = m.AddBinary("neg_offset")

	if !useSlack {
		for _, sv := range v.SocSlack {
			m.Fix(sv, 0)
		}
	}

	// Hourly storage dynamics: the next fill level is the current one
	// plus served imports minus served demand, plus the slack injection.
	for t := 0; t < h; t++ {
		m.AddEQ(fmt.Sprintf("balance[%d]", t), []milp.Term{
			{Var: v.Soc[t+1], Coef: 1},
			{Var: v.SocSlack[t+1], Coef: -1},
			{Var: v.Soc[t], Coef: -1},
			{Var: v.DomServed[t], Coef: 1},
			{Var: v.ElecServed[t], Coef: 1},
			{Var: v.IndServed[t], Coef: 1},
			{Var: v.GHDServed[t], Coef: 1},
			{Var: v.ExpServed[t], Coef: 1},
			{Var: v.PipeServed[t], Coef: -1},
			{Var: v.LNGServed[t], Coef: -1},
		}, 0)
	}

	for t := 0; t < h; t++ {
		m.AddLE(fmt.Sprintf("soc_cap[%d]", t), []milp.Term{{Var: v.Soc[t], Coef: 1}}, capacity)
	}

	// Serving a stream never exceeds its profile for that hour.
	streams := make([]model.Stream, 0, len(model.DemandStreams)+len(model.SupplyStreams))
	streams = append(streams, model.DemandStreams...)
	streams = append(streams, model.SupplyStreams...)
	for _, s := range streams {
		served := v.Served(s)
		series := p.Series(s)
		for t := 0; t < h; t++ {
			m.AddLE(fmt.Sprintf("%s_cap[%d]", s, t), []milp.Term{{Var: served[t], Coef: 1}}, series[t])
		}
	}

	// The fill level tracks the historic trajectory within the corridor
	// for as long as the trajectory reaches.
	anchored := len(anchor)
	if anchored > h+1 {
		anchored = h + 1
	}
	for t := 0; t < anchored; t++ {
		m.AddRange(fmt.Sprintf("anchor[%d]", t),
			[]milp.Term{{Var: v.Soc[t], Coef: 1}},
			anchor[t]-anchorBandTWh, anchor[t]+anchorBandTWh)
	}

	// A stream's flag must raise before any of its demand may go
	// unserved. The flags are free otherwise.
	for _, s := range model.DemandStreams {
		served := v.Served(s)
		series := p.Series(s)
		total := 0.0
		for t := 0; t < h; t++ {
			total += series[t]
		}
		terms := make([]milp.Term, 0, h+1)
		for t := 0; t < h; t++ {
			terms = append(terms, milp.Term{Var: served[t], Coef: 1})
		}
		terms = append(terms, milp.Term{Var: v.UnservedFlags[s], Coef: total})
		m.AddGE(fmt.Sprintf("%s_unserved", s), terms, total)
	}

	// Objective: storage fill is rewarded lightly across the whole
	// horizon, slack injections and unserved demand cost their
	// discounted weight. The unserved term w*disc*(demand - served)
	// enters as a coefficient on served plus a constant.
	fac := math.Pow(1/(1+annualDiscountRate), 1.0/model.HoursPerYear)
	socReward := -storageWeight / (float64(h) * capacity)
	for t := 0; t <= h; t++ {
		m.AddObjCoef(v.Soc[t], socReward)
	}
	for t := 0; t < h; t++ {
		disc := math.Pow(fac, float64(t))
		m.AddObjCoef(v.SocSlack[t], disc)
		for _, s := range model.DemandStreams {
			w := unservedWeights[s]
			m.AddObjCoef(v.Served(s)[t], -w*disc)
			m.AddObjConst(w * disc * p.Series(s)[t])
		}
	}

	return m, v, nil
}

func hourSeries(m *milp.Model, name string, n int) []milp.Var {
	vars := make([]milp.Var, n)
	for i := range vars {
		vars[i] = m.AddVar(fmt.Sprintf("%s[%d]", name, i))
	}
	return vars
}
