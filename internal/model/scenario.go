package model

import (
	"fmt"
	"time"
)

// LNGBaseImport is the fixed LNG terminal throughput already contracted
// before any scenario expansion, TWh per year.
const LNGBaseImport = 876.0

// Scenario holds every input of a single balance run. Totals are annual
// energies in TWh unless noted. The zero value is not useful; start from
// DefaultScenario and override fields. Scenarios are passed by value and
// never mutated by a run.
type Scenario struct {
	// Annual supply totals.
	TotalImport       float64 // all pipeline imports
	TotalProduction   float64 // domestic production
	TotalImportRussia float64 // Russian part of TotalImport

	// Annual demand totals.
	TotalDomesticDemand    float64
	TotalGHDDemand         float64 // commerce, trade and services
	TotalElectricityDemand float64
	TotalIndustryDemand    float64
	TotalExportsAndOther   float64

	// Demand reduction fractions in [0, 1], in force for hours strictly
	// after DemandReductionDate.
	ReductionDomestic    float64
	ReductionElectricity float64
	ReductionGHD         float64
	ReductionIndustry    float64
	ReductionExports     float64

	// Regime switch dates. Substituted levels apply to hours strictly
	// after the cutoff, so a cutoff at the horizon start leaves hour 0
	// on the baseline.
	ImportStopDate      time.Time
	DemandReductionDate time.Time
	LNGIncreaseDate     time.Time

	// LNGAddImport is extra LNG capacity available from LNGIncreaseDate,
	// TWh per year on top of LNGBaseImport.
	LNGAddImport float64

	// RussianShare is the fraction of Russian pipeline imports still
	// flowing after ImportStopDate. 0 models a full stop.
	RussianShare float64

	// UseSocSlack relaxes the hourly storage balance with penalized
	// slack variables instead of letting tight runs go infeasible.
	UseSocSlack bool
}

// DefaultScenario returns the 2022 reference parameterization: a full
// Russian import stop in mid April, demand reduction from mid March and
// additional LNG capacity from May.
func DefaultScenario() Scenario {
	return Scenario{
		TotalImport:       4190,
		TotalProduction:   608,
		TotalImportRussia: 1752,

		TotalDomesticDemand:    926,
		TotalGHDDemand:         420.5,
		TotalElectricityDemand: 1515.83,
		TotalIndustryDemand:    1110.88,
		TotalExportsAndOther:   988,

		ReductionDomestic:    0.13,
		ReductionElectricity: 0.20,
		ReductionGHD:         0.08,
		ReductionIndustry:    0.08,
		ReductionExports:     0,

		ImportStopDate:      time.Date(2022, 4, 16, 0, 0, 0, 0, time.UTC),
		DemandReductionDate: time.Date(2022, 3, 16, 0, 0, 0, 0, time.UTC),
		LNGIncreaseDate:     time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),

		LNGAddImport: 965,
		RussianShare: 0,
	}
}

// HasDemandReduction reports whether any reduction fraction is set.
func (sc Scenario) HasDemandReduction() bool {
	return sc.ReductionDomestic > 0 ||
		sc.ReductionElectricity > 0 ||
		sc.ReductionGHD > 0 ||
		sc.ReductionIndustry > 0 ||
		sc.ReductionExports > 0
}

// Name derives the label used for output files, log lines and streamed
// events. It encodes the knobs that distinguish sweep runs.
func (sc Scenario) Name() string {
	red := "no-demand-reduction"
	if sc.HasDemandReduction() {
		red = "demand-reduction"
	}
	slack := "no-slack"
	if sc.UseSocSlack {
		slack = "soc-slack"
	}
	return fmt.Sprintf("russ-share-%.0f_lng-add-%.0f_%s_%s",
		sc.RussianShare*100, sc.LNGAddImport, red, slack)
}
