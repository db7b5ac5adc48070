package balance

import (
	"math"
	"strconv"
	"time"

	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
)

// Row is one hour of the result table: every profile series next to the
// flow the solver allocated for it, plus the storage level and slack.
type Row struct {
	Time time.Time

	PipeImp       float64
	PipeImpServed float64
	LNGImp        float64
	LNGImpServed  float64

	DomDem        float64
	DomDemServed  float64
	ElecDem       float64
	ElecDemServed float64
	IndDem        float64
	IndDemServed  float64
	GHDDem        float64
	GHDDemServed  float64

	ExpAndOther       float64
	ExpAndOtherServed float64

	Soc      float64
	SocSlack float64
}

// Param is one entry of the input echo that accompanies every result,
// so a saved run can be reproduced without the scenario file.
type Param struct {
	Key   string
	Value string
}

const paramTimeLayout = "2006-01-02 15:04:05"

// assembleRows zips the profile series against the solved flows over the
// non-terminal hours. Values the solver left undefined read as zero.
func assembleRows(p *profile.Profiles, v *Variables, sol *milp.Solution) []Row {
	h := p.Index.Len()
	rows := make([]Row, h)
	for t := 0; t < h; t++ {
		rows[t] = Row{
			Time: p.Index.Time(t),

			PipeImp:       p.PipeImp[t],
			PipeImpServed: solved(sol, v.PipeServed[t]),
			LNGImp:        p.LNGImp[t],
			LNGImpServed:  solved(sol, v.LNGServed[t]),

			DomDem:        p.DomDem[t],
			DomDemServed:  solved(sol, v.DomServed[t]),
			ElecDem:       p.ElecDem[t],
			ElecDemServed: solved(sol, v.ElecServed[t]),
			IndDem:        p.IndDem[t],
			IndDemServed:  solved(sol, v.IndServed[t]),
			GHDDem:        p.GHDDem[t],
			GHDDemServed:  solved(sol, v.GHDServed[t]),

			ExpAndOther:       p.ExpAndOther[t],
			ExpAndOtherServed: solved(sol, v.ExpServed[t]),

			Soc:      solved(sol, v.Soc[t]),
			SocSlack: solved(sol, v.SocSlack[t]),
		}
	}
	return rows
}

func solved(sol *milp.Solution, v milp.Var) float64 {
	val := sol.Value(v)
	if math.IsNaN(val) {
		return 0
	}
	return val
}

// EchoParams flattens a scenario into key/value pairs, derived constants
// included, in the order the result files have always carried them.
func EchoParams(sc model.Scenario, capacity float64) []Param {
	return []Param{
		{"total_import", num(sc.TotalImport)},
		{"total_production", num(sc.TotalProduction)},
		{"total_import_russia", num(sc.TotalImportRussia)},
		{"total_domestic_demand", num(sc.TotalDomesticDemand)},
		{"total_ghd_demand", num(sc.TotalGHDDemand)},
		{"total_electricity_demand", num(sc.TotalElectricityDemand)},
		{"total_industry_demand", num(sc.TotalIndustryDemand)},
		{"total_exports_and_other", num(sc.TotalExportsAndOther)},
		{"red_dom_dem", num(sc.ReductionDomestic)},
		{"red_elec_dem", num(sc.ReductionElectricity)},
		{"red_ghd_dem", num(sc.ReductionGHD)},
		{"red_ind_dem", num(sc.ReductionIndustry)},
		{"red_exp_dem", num(sc.ReductionExports)},
		{"import_stop_date", sc.ImportStopDate.Format(paramTimeLayout)},
		{"demand_reduction_date", sc.DemandReductionDate.Format(paramTimeLayout)},
		{"lng_increase_date", sc.LNGIncreaseDate.Format(paramTimeLayout)},
		{"lng_base_import", num(model.LNGBaseImport)},
		{"lng_add_import", num(sc.LNGAddImport)},
		{"russ_share", num(sc.RussianShare)},
		{"storCap", num(capacity)},
		{"use_soc_slack", strconv.FormatBool(sc.UseSocSlack)},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
