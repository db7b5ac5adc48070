// Command run-scenario executes one balance scenario or a sweep grid
// and writes the hourly result table and the input echo as CSV files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gas_balance/internal/balance"
	"gas_balance/internal/config"
	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
	"gas_balance/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "scenario YAML (optional, defaults apply without it)")
	shapeFile := flag.String("shape-file", "", "normalized load shape CSV (overrides config)")
	storageFile := flag.String("storage-file", "", "daily storage levels CSV (overrides config)")
	outDir := flag.String("out-dir", "results", "directory for result CSVs")
	sweep := flag.Bool("sweep", false, "run the configured sweep grid instead of a single scenario")
	slack := flag.Bool("soc-slack", false, "relax the storage balance with penalized slack")
	verbose := flag.Bool("verbose", false, "full solver log output")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *shapeFile != "" {
		cfg.Data.ShapeFile = *shapeFile
	}
	if *storageFile != "" {
		cfg.Data.StorageFile = *storageFile
	}

	base, err := cfg.BuildScenario()
	if err != nil {
		log.Fatalf("Invalid scenario: %v", err)
	}
	if *slack {
		base.UseSocSlack = true
	}

	scenarios := []model.Scenario{base}
	if *sweep {
		scenarios = cfg.SweepScenarios(base)
		log.Printf("Sweep: %d scenarios", len(scenarios))
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Creating output directory: %v", err)
	}

	runner := &balance.Runner{
		Shapes:   profile.FileShape{Path: cfg.Data.ShapeFile, Column: cfg.Data.ShapeColumn},
		Storage:  storage.FileSource{Path: cfg.Data.StorageFile, Year: cfg.Data.StorageYear},
		Solver:   &milp.GLPKSolver{Verbose: *verbose},
		Callback: logCallback{},
	}

	for _, sc := range scenarios {
		res, err := runner.Run(sc)
		if err != nil {
			log.Fatalf("Scenario %s: %v", sc.Name(), err)
		}
		if err := writeOutputs(*outDir, res); err != nil {
			log.Fatalf("Writing results for %s: %v", res.Name, err)
		}
		printSummary(res.Summary)
	}
}

func writeOutputs(dir string, res *balance.Result) error {
	resultPath := filepath.Join(dir, fmt.Sprintf("results_%s.csv", res.Name))
	f, err := os.Create(resultPath)
	if err != nil {
		return err
	}
	if err := balance.WriteResultCSV(f, res.Rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("  Wrote %s (%d rows)", resultPath, len(res.Rows))

	paramsPath := filepath.Join(dir, fmt.Sprintf("input_data_%s.csv", res.Name))
	f, err = os.Create(paramsPath)
	if err != nil {
		return err
	}
	if err := balance.WriteParamsCSV(f, res.Params); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("  Wrote %s", paramsPath)
	return nil
}

func printSummary(s balance.Summary) {
	fmt.Println()
	fmt.Printf("=== %s ===\n", s.Scenario)
	fmt.Printf("  Status: %s   Objective: %.3f   Solve: %.1fs\n", s.Status, s.Objective, s.SolveSeconds)
	fmt.Printf("  Storage: %.1f -> %.1f TWh   Slack: %.3f TWh\n", s.InitialSoc, s.FinalSoc, s.SlackTotal)
	fmt.Println()
	fmt.Printf("   %-22s │ %9s │ %9s │ %9s │ %4s\n", "Stream", "Demand", "Served", "Unserved", "Flag")
	fmt.Printf("  ────────────────────────┼───────────┼───────────┼───────────┼─────\n")
	for _, row := range append(append([]balance.StreamSummary{}, s.Demand...), s.Supply...) {
		flag := ""
		if row.Flagged {
			flag = "✗"
		}
		name := string(row.Stream)
		if info, ok := model.StreamCatalog[row.Stream]; ok {
			name = info.Name
		}
		fmt.Printf("   %-22s │ %9.1f │ %9.1f │ %9.2f │ %4s\n",
			name, row.Demand, row.Served, row.Unserved, flag)
	}
	fmt.Println()
}

// logCallback narrates run progress on the standard logger.
type logCallback struct{}

func (logCallback) OnStage(e balance.StageEvent) {
	if e.Detail != "" {
		log.Printf("[%s] %s (%s)", e.Scenario, e.Stage, e.Detail)
		return
	}
	log.Printf("[%s] %s", e.Scenario, e.Stage)
}

func (logCallback) OnSummary(balance.Summary) {}
