// Package config loads scenario runs from YAML files: input data paths,
// overrides of the default scenario and optional sweep grids.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gas_balance/internal/balance"
	"gas_balance/internal/model"
)

const dateLayout = "2006-01-02"

// Config is the on-disk configuration shape (YAML). Scenario fields are
// pointers so a zero (a reduction of 0, a share of 0) is distinguishable
// from "not set, keep the default".
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

type DataConfig struct {
	ShapeFile   string `yaml:"shape_file"`
	ShapeColumn string `yaml:"shape_column"`
	StorageFile string `yaml:"storage_file"`
	StorageYear int    `yaml:"storage_year"`
}

type ScenarioConfig struct {
	TotalImport       *float64 `yaml:"total_import"`
	TotalProduction   *float64 `yaml:"total_production"`
	TotalImportRussia *float64 `yaml:"total_import_russia"`

	TotalDomesticDemand    *float64 `yaml:"total_domestic_demand"`
	TotalGHDDemand         *float64 `yaml:"total_ghd_demand"`
	TotalElectricityDemand *float64 `yaml:"total_electricity_demand"`
	TotalIndustryDemand    *float64 `yaml:"total_industry_demand"`
	TotalExportsAndOther   *float64 `yaml:"total_exports_and_other"`

	ReductionDomestic    *float64 `yaml:"red_dom_dem"`
	ReductionElectricity *float64 `yaml:"red_elec_dem"`
	ReductionGHD         *float64 `yaml:"red_ghd_dem"`
	ReductionIndustry    *float64 `yaml:"red_ind_dem"`
	ReductionExports     *float64 `yaml:"red_exp_dem"`

	ImportStopDate      string `yaml:"import_stop_date"`
	DemandReductionDate string `yaml:"demand_reduction_date"`
	LNGIncreaseDate     string `yaml:"lng_increase_date"`

	LNGAddImport *float64 `yaml:"lng_add_import"`
	RussianShare *float64 `yaml:"russ_share"`
	UseSocSlack  *bool    `yaml:"use_soc_slack"`
}

type SweepConfig struct {
	RussianShares []float64 `yaml:"russian_shares"`
	LNGAddImports []float64 `yaml:"lng_add_imports"`
}

// Default returns the configuration used when no file is given: standard
// input locations and the default scenario untouched.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			ShapeFile:   "input/ts_normalized.csv",
			ShapeColumn: "Private Haushalte",
			StorageFile: "input/storage_levels.csv",
			StorageYear: 2022,
		},
	}
}

// Load reads and validates a YAML configuration file. Omitted data
// fields fall back to the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if c.Data.ShapeColumn == "" {
		c.Data.ShapeColumn = "Private Haushalte"
	}
	if c.Data.StorageYear == 0 {
		c.Data.StorageYear = 2022
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges and date formats without building the scenario.
func (c *Config) Validate() error {
	fractions := map[string]*float64{
		"red_dom_dem":  c.Scenario.ReductionDomestic,
		"red_elec_dem": c.Scenario.ReductionElectricity,
		"red_ghd_dem":  c.Scenario.ReductionGHD,
		"red_ind_dem":  c.Scenario.ReductionIndustry,
		"red_exp_dem":  c.Scenario.ReductionExports,
		"russ_share":   c.Scenario.RussianShare,
	}
	for name, f := range fractions {
		if f != nil && (*f < 0 || *f > 1) {
			return fmt.Errorf("%s must be in [0, 1], got %g", name, *f)
		}
	}
	for name, d := range map[string]string{
		"import_stop_date":      c.Scenario.ImportStopDate,
		"demand_reduction_date": c.Scenario.DemandReductionDate,
		"lng_increase_date":     c.Scenario.LNGIncreaseDate,
	} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for _, rs := range c.Sweep.RussianShares {
		if rs < 0 || rs > 1 {
			return fmt.Errorf("sweep russian_shares must be in [0, 1], got %g", rs)
		}
	}
	return nil
}

// BuildScenario applies the configured overrides onto the default
// scenario.
func (c *Config) BuildScenario() (model.Scenario, error) {
	sc := model.DefaultScenario()
	s := c.Scenario

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&sc.TotalImport, s.TotalImport)
	setF(&sc.TotalProduction, s.TotalProduction)
	setF(&sc.TotalImportRussia, s.TotalImportRussia)
	setF(&sc.TotalDomesticDemand, s.TotalDomesticDemand)
	setF(&sc.TotalGHDDemand, s.TotalGHDDemand)
	setF(&sc.TotalElectricityDemand, s.TotalElectricityDemand)
	setF(&sc.TotalIndustryDemand, s.TotalIndustryDemand)
	setF(&sc.TotalExportsAndOther, s.TotalExportsAndOther)
	setF(&sc.ReductionDomestic, s.ReductionDomestic)
	setF(&sc.ReductionElectricity, s.ReductionElectricity)
	setF(&sc.ReductionGHD, s.ReductionGHD)
	setF(&sc.ReductionIndustry, s.ReductionIndustry)
	setF(&sc.ReductionExports, s.ReductionExports)
	setF(&sc.LNGAddImport, s.LNGAddImport)
	setF(&sc.RussianShare, s.RussianShare)
	if s.UseSocSlack != nil {
		sc.UseSocSlack = *s.UseSocSlack
	}

	setDate := func(dst *time.Time, src, name string) error {
		if src == "" {
			return nil
		}
		d, err := time.Parse(dateLayout, src)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
		return nil
	}
	if err := setDate(&sc.ImportStopDate, s.ImportStopDate, "import_stop_date"); err != nil {
		return sc, err
	}
	if err := setDate(&sc.DemandReductionDate, s.DemandReductionDate, "demand_reduction_date"); err != nil {
		return sc, err
	}
	if err := setDate(&sc.LNGIncreaseDate, s.LNGIncreaseDate, "lng_increase_date"); err != nil {
		return sc, err
	}
	return sc, nil
}

// SweepScenarios returns the sweep grid, or just the base scenario when
// no grid is configured.
func (c *Config) SweepScenarios(base model.Scenario) []model.Scenario {
	russ := c.Sweep.RussianShares
	lng := c.Sweep.LNGAddImports
	if len(russ) == 0 {
		russ = []float64{base.RussianShare}
	}
	if len(lng) == 0 {
		lng = []float64{base.LNGAddImport}
	}
	return balance.SweepGrid(base, russ, lng)
}
