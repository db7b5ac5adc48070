package profile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gas_balance/internal/model"
)

// Demand mix between the volatile household shape and a flat profile.
// Households are fully weather driven, electricity and industry carry a
// 30% volatile component on a flat base, everything else is flat.
const (
	elecVolatileShare = 0.30
	indVolatileShare  = 0.30
)

// Profiles holds the seven aligned hourly series of one scenario, in TWh
// per hour on the shared index. Demand series already carry the
// scenario's reductions, supply series their level switches.
type Profiles struct {
	Index model.HourlyIndex

	DomDem      []float64
	GHDDem      []float64
	ElecDem     []float64
	IndDem      []float64
	ExpAndOther []float64

	PipeImp []float64
	LNGImp  []float64
}

// Series returns the hourly series of one stream.
func (p *Profiles) Series(s model.Stream) []float64 {
	switch s {
	case model.StreamDomDem:
		return p.DomDem
	case model.StreamGHDDem:
		return p.GHDDem
	case model.StreamElecDem:
		return p.ElecDem
	case model.StreamIndDem:
		return p.IndDem
	case model.StreamExpAndOther:
		return p.ExpAndOther
	case model.StreamPipeImp:
		return p.PipeImp
	case model.StreamLNGImp:
		return p.LNGImp
	default:
		return nil
	}
}

// Build expands annual scenario totals into hourly series over the
// default 1.5 year horizon.
func Build(sc model.Scenario, shape []float64) (*Profiles, error) {
	return BuildOn(model.DefaultHorizon(), sc, shape)
}

// BuildOn builds the series on a caller supplied index. The volatile
// shape wraps back to the start of its year beyond hour 8760, so the
// half year past the first year repeats the first half year.
func BuildOn(ix model.HourlyIndex, sc model.Scenario, shape []float64) (*Profiles, error) {
	if len(shape) != model.HoursPerYear {
		return nil, fmt.Errorf("normalized shape has %d values, want %d", len(shape), model.HoursPerYear)
	}

	n := ix.Len()
	vol := tile(shape, n)

	p := &Profiles{Index: ix}

	p.DomDem = scaled(vol, sc.TotalDomesticDemand)
	p.GHDDem = constant(n, sc.TotalGHDDemand)
	p.ElecDem = mixed(vol, elecVolatileShare, sc.TotalElectricityDemand)
	p.IndDem = mixed(vol, indVolatileShare, sc.TotalIndustryDemand)
	p.ExpAndOther = constant(n, sc.TotalExportsAndOther)

	// Demand reduction regime: every stream scales down by its fraction
	// for hours strictly after the cutoff.
	from := ix.FirstAfter(sc.DemandReductionDate)
	reduce(p.DomDem, from, sc.ReductionDomestic)
	reduce(p.GHDDem, from, sc.ReductionGHD)
	reduce(p.ElecDem, from, sc.ReductionElectricity)
	reduce(p.IndDem, from, sc.ReductionIndustry)
	reduce(p.ExpAndOther, from, sc.ReductionExports)

	// Pipeline supply drops to the retained Russian share plus unchanged
	// non-Russian flows; LNG ramps up from the contracted baseline.
	nonRussian := sc.TotalImport + sc.TotalProduction - sc.TotalImportRussia - model.LNGBaseImport
	p.PipeImp = constant(n, sc.TotalImportRussia+nonRussian)
	setLevel(p.PipeImp, ix.FirstAfter(sc.ImportStopDate), sc.RussianShare*sc.TotalImportRussia+nonRussian)

	p.LNGImp = constant(n, model.LNGBaseImport)
	setLevel(p.LNGImp, ix.FirstAfter(sc.LNGIncreaseDate), model.LNGBaseImport+sc.LNGAddImport)

	return p, nil
}

// tile repeats the one year shape across n hours.
func tile(shape []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = shape[i%len(shape)]
	}
	return out
}

// scaled returns shape scaled by an annual total.
func scaled(shape []float64, total float64) []float64 {
	out := make([]float64, len(shape))
	floats.AddScaled(out, total, shape)
	return out
}

// constant returns a flat series carrying total/8760 every hour.
func constant(n int, total float64) []float64 {
	out := make([]float64, n)
	floats.AddConst(total/model.HoursPerYear, out)
	return out
}

// mixed blends a volatile component with a flat base.
func mixed(vol []float64, volShare, total float64) []float64 {
	out := constant(len(vol), (1-volShare)*total)
	floats.AddScaled(out, volShare*total, vol)
	return out
}

// reduce scales values from index `from` onward by (1 - frac).
func reduce(series []float64, from int, frac float64) {
	if from >= len(series) || frac == 0 {
		return
	}
	floats.Scale(1-frac, series[from:])
}

// setLevel replaces values from index `from` onward with a flat series
// carrying the given annual total.
func setLevel(series []float64, from int, total float64) {
	level := total / model.HoursPerYear
	for i := from; i < len(series); i++ {
		series[i] = level
	}
}
