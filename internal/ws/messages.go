package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"gas_balance/internal/balance"
	"gas_balance/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeScenarioRun = "scenario:run"

	// Server -> Client
	TypeScenarioDefaults = "scenario:defaults"
	TypeRunStage         = "run:stage"
	TypeRunSummary       = "run:summary"
	TypeRunError         = "run:error"
)

const dateLayout = "2006-01-02"

// RunRequestPayload carries optional overrides of the default scenario.
// Pointer fields distinguish an explicit zero from "keep the default";
// dates use YYYY-MM-DD.
type RunRequestPayload struct {
	TotalImport       *float64 `json:"total_import,omitempty"`
	TotalProduction   *float64 `json:"total_production,omitempty"`
	TotalImportRussia *float64 `json:"total_import_russia,omitempty"`

	TotalDomesticDemand    *float64 `json:"total_domestic_demand,omitempty"`
	TotalGHDDemand         *float64 `json:"total_ghd_demand,omitempty"`
	TotalElectricityDemand *float64 `json:"total_electricity_demand,omitempty"`
	TotalIndustryDemand    *float64 `json:"total_industry_demand,omitempty"`
	TotalExportsAndOther   *float64 `json:"total_exports_and_other,omitempty"`

	ReductionDomestic    *float64 `json:"red_dom_dem,omitempty"`
	ReductionElectricity *float64 `json:"red_elec_dem,omitempty"`
	ReductionGHD         *float64 `json:"red_ghd_dem,omitempty"`
	ReductionIndustry    *float64 `json:"red_ind_dem,omitempty"`
	ReductionExports     *float64 `json:"red_exp_dem,omitempty"`

	ImportStopDate      string `json:"import_stop_date,omitempty"`
	DemandReductionDate string `json:"demand_reduction_date,omitempty"`
	LNGIncreaseDate     string `json:"lng_increase_date,omitempty"`

	LNGAddImport *float64 `json:"lng_add_import,omitempty"`
	RussianShare *float64 `json:"russ_share,omitempty"`
	UseSocSlack  *bool    `json:"use_soc_slack,omitempty"`
}

// Apply overlays the request onto a base scenario.
func (p RunRequestPayload) Apply(sc model.Scenario) (model.Scenario, error) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&sc.TotalImport, p.TotalImport)
	setF(&sc.TotalProduction, p.TotalProduction)
	setF(&sc.TotalImportRussia, p.TotalImportRussia)
	setF(&sc.TotalDomesticDemand, p.TotalDomesticDemand)
	setF(&sc.TotalGHDDemand, p.TotalGHDDemand)
	setF(&sc.TotalElectricityDemand, p.TotalElectricityDemand)
	setF(&sc.TotalIndustryDemand, p.TotalIndustryDemand)
	setF(&sc.TotalExportsAndOther, p.TotalExportsAndOther)
	setF(&sc.ReductionDomestic, p.ReductionDomestic)
	setF(&sc.ReductionElectricity, p.ReductionElectricity)
	setF(&sc.ReductionGHD, p.ReductionGHD)
	setF(&sc.ReductionIndustry, p.ReductionIndustry)
	setF(&sc.ReductionExports, p.ReductionExports)
	setF(&sc.LNGAddImport, p.LNGAddImport)
	setF(&sc.RussianShare, p.RussianShare)
	if p.UseSocSlack != nil {
		sc.UseSocSlack = *p.UseSocSlack
	}

	for _, d := range []struct {
		dst  *time.Time
		src  string
		name string
	}{
		{&sc.ImportStopDate, p.ImportStopDate, "import_stop_date"},
		{&sc.DemandReductionDate, p.DemandReductionDate, "demand_reduction_date"},
		{&sc.LNGIncreaseDate, p.LNGIncreaseDate, "lng_increase_date"},
	} {
		if d.src == "" {
			continue
		}
		parsed, err := time.Parse(dateLayout, d.src)
		if err != nil {
			return sc, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}
	return sc, nil
}

// ScenarioDefaultsPayload echoes the full default parameterization on
// connect so a front-end can prefill its form.
type ScenarioDefaultsPayload struct {
	TotalImport       float64 `json:"total_import"`
	TotalProduction   float64 `json:"total_production"`
	TotalImportRussia float64 `json:"total_import_russia"`

	TotalDomesticDemand    float64 `json:"total_domestic_demand"`
	TotalGHDDemand         float64 `json:"total_ghd_demand"`
	TotalElectricityDemand float64 `json:"total_electricity_demand"`
	TotalIndustryDemand    float64 `json:"total_industry_demand"`
	TotalExportsAndOther   float64 `json:"total_exports_and_other"`

	ReductionDomestic    float64 `json:"red_dom_dem"`
	ReductionElectricity float64 `json:"red_elec_dem"`
	ReductionGHD         float64 `json:"red_ghd_dem"`
	ReductionIndustry    float64 `json:"red_ind_dem"`
	ReductionExports     float64 `json:"red_exp_dem"`

	ImportStopDate      string `json:"import_stop_date"`
	DemandReductionDate string `json:"demand_reduction_date"`
	LNGIncreaseDate     string `json:"lng_increase_date"`

	LNGAddImport float64 `json:"lng_add_import"`
	RussianShare float64 `json:"russ_share"`
	UseSocSlack  bool    `json:"use_soc_slack"`
}

func DefaultsPayload(sc model.Scenario) ScenarioDefaultsPayload {
	return ScenarioDefaultsPayload{
		TotalImport:       sc.TotalImport,
		TotalProduction:   sc.TotalProduction,
		TotalImportRussia: sc.TotalImportRussia,

		TotalDomesticDemand:    sc.TotalDomesticDemand,
		TotalGHDDemand:         sc.TotalGHDDemand,
		TotalElectricityDemand: sc.TotalElectricityDemand,
		TotalIndustryDemand:    sc.TotalIndustryDemand,
		TotalExportsAndOther:   sc.TotalExportsAndOther,

		ReductionDomestic:    sc.ReductionDomestic,
		ReductionElectricity: sc.ReductionElectricity,
		ReductionGHD:         sc.ReductionGHD,
		ReductionIndustry:    sc.ReductionIndustry,
		ReductionExports:     sc.ReductionExports,

		ImportStopDate:      sc.ImportStopDate.Format(dateLayout),
		DemandReductionDate: sc.DemandReductionDate.Format(dateLayout),
		LNGIncreaseDate:     sc.LNGIncreaseDate.Format(dateLayout),

		LNGAddImport: sc.LNGAddImport,
		RussianShare: sc.RussianShare,
		UseSocSlack:  sc.UseSocSlack,
	}
}

// RunStagePayload mirrors balance.StageEvent on the wire.
type RunStagePayload struct {
	Scenario string `json:"scenario"`
	Stage    string `json:"stage"`
	Detail   string `json:"detail,omitempty"`
}

// RunErrorPayload reports a rejected or failed run.
type RunErrorPayload struct {
	Scenario string `json:"scenario,omitempty"`
	Error    string `json:"error"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// StageFromRun converts a runner stage event to its wire form.
func StageFromRun(e balance.StageEvent) RunStagePayload {
	return RunStagePayload{Scenario: e.Scenario, Stage: e.Stage, Detail: e.Detail}
}
