package balance

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_balance/internal/model"
)

func TestEchoParams(t *testing.T) {
	sc := model.DefaultScenario()
	sc.UseSocSlack = true
	params := EchoParams(sc, 1100)

	keys := make([]string, len(params))
	byKey := map[string]string{}
	for i, p := range params {
		keys[i] = p.Key
		byKey[p.Key] = p.Value
	}

	assert.Equal(t, []string{
		"total_import", "total_production", "total_import_russia",
		"total_domestic_demand", "total_ghd_demand", "total_electricity_demand",
		"total_industry_demand", "total_exports_and_other",
		"red_dom_dem", "red_elec_dem", "red_ghd_dem", "red_ind_dem", "red_exp_dem",
		"import_stop_date", "demand_reduction_date", "lng_increase_date",
		"lng_base_import", "lng_add_import", "russ_share", "storCap",
		"use_soc_slack",
	}, keys)

	assert.Equal(t, "4190", byKey["total_import"])
	assert.Equal(t, "420.5", byKey["total_ghd_demand"])
	assert.Equal(t, "0.13", byKey["red_dom_dem"])
	assert.Equal(t, "2022-04-16 00:00:00", byKey["import_stop_date"])
	assert.Equal(t, "876", byKey["lng_base_import"])
	assert.Equal(t, "true", byKey["use_soc_slack"])
}

func TestWriteResultCSV(t *testing.T) {
	rows := []Row{
		{
			Time:          time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			PipeImp:       0.45, PipeImpServed: 0.4,
			LNGImp: 0.1, LNGImpServed: 0.1,
			DomDem: 0.105, DomDemServed: 0.105,
			ElecDem: 0.173, ElecDemServed: 0.17,
			IndDem: 0.126, IndDemServed: 0.126,
			GHDDem: 0.048, GHDDemServed: 0.048,
			ExpAndOther: 0.112, ExpAndOtherServed: 0.1,
			Soc: 547.81, SocSlack: 0,
		},
		{Time: time.Date(2022, 1, 1, 1, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResultCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, resultHeader, records[0])
	assert.Equal(t, "2022-01-01 00:00:00", records[1][0])
	assert.Equal(t, "0.45", records[1][1])
	assert.Equal(t, "0.4", records[1][2])
	assert.Equal(t, "547.81", records[1][15])
	assert.Equal(t, "0", records[1][16])
	assert.Equal(t, "2022-01-01 01:00:00", records[2][0])
	assert.Equal(t, "0", records[2][1])
}

func TestWriteParamsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteParamsCSV(&buf, EchoParams(model.DefaultScenario(), 1100)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 22) // header + 21 parameters

	assert.Equal(t, []string{"parameter", "value"}, records[0])
	assert.Equal(t, []string{"total_import", "4190"}, records[1])
	assert.Equal(t, []string{"use_soc_slack", "false"}, records[21])
}
