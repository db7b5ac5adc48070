package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()

	assert.InDelta(t, 4190, sc.TotalImport, 0.001)
	assert.InDelta(t, 608, sc.TotalProduction, 0.001)
	assert.InDelta(t, 1752, sc.TotalImportRussia, 0.001)

	assert.InDelta(t, 926, sc.TotalDomesticDemand, 0.001)
	assert.InDelta(t, 420.5, sc.TotalGHDDemand, 0.001)
	assert.InDelta(t, 1515.83, sc.TotalElectricityDemand, 0.001)
	assert.InDelta(t, 1110.88, sc.TotalIndustryDemand, 0.001)
	assert.InDelta(t, 988, sc.TotalExportsAndOther, 0.001)

	assert.InDelta(t, 0.13, sc.ReductionDomestic, 0.001)
	assert.InDelta(t, 0.20, sc.ReductionElectricity, 0.001)
	assert.InDelta(t, 0.08, sc.ReductionGHD, 0.001)
	assert.InDelta(t, 0.08, sc.ReductionIndustry, 0.001)
	assert.Zero(t, sc.ReductionExports)

	assert.Equal(t, time.Date(2022, 4, 16, 0, 0, 0, 0, time.UTC), sc.ImportStopDate)
	assert.Equal(t, time.Date(2022, 3, 16, 0, 0, 0, 0, time.UTC), sc.DemandReductionDate)
	assert.Equal(t, time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC), sc.LNGIncreaseDate)

	assert.InDelta(t, 965, sc.LNGAddImport, 0.001)
	assert.Zero(t, sc.RussianShare)
	assert.False(t, sc.UseSocSlack)
}

func TestScenarioName(t *testing.T) {
	sc := DefaultScenario()
	assert.Equal(t, "russ-share-0_lng-add-965_demand-reduction_no-slack", sc.Name())

	sc.RussianShare = 0.5
	sc.LNGAddImport = 0
	sc.UseSocSlack = true
	assert.Equal(t, "russ-share-50_lng-add-0_demand-reduction_soc-slack", sc.Name())
}

func TestHasDemandReduction(t *testing.T) {
	sc := DefaultScenario()
	assert.True(t, sc.HasDemandReduction())

	sc.ReductionDomestic = 0
	sc.ReductionElectricity = 0
	sc.ReductionGHD = 0
	sc.ReductionIndustry = 0
	sc.ReductionExports = 0
	assert.False(t, sc.HasDemandReduction())
	assert.Equal(t, "russ-share-0_lng-add-965_no-demand-reduction_no-slack", sc.Name())

	sc.ReductionExports = 0.01
	assert.True(t, sc.HasDemandReduction())
}
