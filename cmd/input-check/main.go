// Command input-check validates the two input files of a balance run
// and prints their key statistics: the normalized load shape must carry
// one weight per hour of a year summing to 1, the storage level table
// must cover the anchor year.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gas_balance/internal/model"
	"gas_balance/internal/profile"
	"gas_balance/internal/storage"
)

func main() {
	shapeFile := flag.String("shape-file", "input/ts_normalized.csv", "normalized load shape CSV")
	shapeColumn := flag.String("shape-column", profile.DefaultColumn, "shape column to check")
	storageFile := flag.String("storage-file", "input/storage_levels.csv", "daily storage levels CSV")
	year := flag.Int("year", 2022, "anchor year")
	flag.Parse()

	ok := true
	if !checkShape(*shapeFile, *shapeColumn) {
		ok = false
	}
	fmt.Println()
	if !checkStorage(*storageFile, *year) {
		ok = false
	}

	if !ok {
		os.Exit(1)
	}
}

func checkShape(path, column string) bool {
	fmt.Printf("=== Load shape: %s [%s] ===\n", path, column)

	f, err := os.Open(path)
	if err != nil {
		log.Printf("  FAIL: %v", err)
		return false
	}
	defer f.Close()

	shape, err := profile.NewShapeParser(column).Parse(f)
	if err != nil {
		log.Printf("  FAIL: %v", err)
		return false
	}

	sum := floats.Sum(shape)
	mean := stat.Mean(shape, nil)
	sd := stat.StdDev(shape, nil)
	min := floats.Min(shape)
	max := floats.Max(shape)

	fmt.Printf("  Hours: %d   Sum: %.6f\n", len(shape), sum)
	fmt.Printf("  Weight: mean %.3g   sd %.3g   min %.3g   max %.3g\n", mean, sd, min, max)

	ok := true
	if math.Abs(sum-1) > 0.01 {
		log.Printf("  FAIL: weights sum to %.6f, want 1 (annual totals would be rescaled)", sum)
		ok = false
	}
	if min < 0 {
		log.Printf("  FAIL: negative weight %.3g", min)
		ok = false
	}
	if ok {
		fmt.Println("  OK")
	}
	return ok
}

func checkStorage(path string, year int) bool {
	fmt.Printf("=== Storage levels: %s (year %d) ===\n", path, year)

	f, err := os.Open(path)
	if err != nil {
		log.Printf("  FAIL: %v", err)
		return false
	}
	defer f.Close()

	levels, err := (&storage.LevelsParser{}).Parse(f)
	if err != nil {
		log.Printf("  FAIL: %v", err)
		return false
	}
	fmt.Printf("  Rows: %d total\n", len(levels))

	anchor, err := storage.AnchorForYear(levels, year)
	if err != nil {
		log.Printf("  FAIL: %v", err)
		return false
	}

	days := len(anchor) / 24
	min := floats.Min(anchor)
	max := floats.Max(anchor)
	fmt.Printf("  Anchor: %d days (%d hours)   Level: min %.1f   max %.1f TWh\n",
		days, len(anchor), min, max)

	ok := true
	if max > storage.TotalCapacityTWh {
		log.Printf("  FAIL: level %.1f exceeds the %.0f TWh capacity", max, storage.TotalCapacityTWh)
		ok = false
	}
	if min < 0 {
		log.Printf("  FAIL: negative level %.1f", min)
		ok = false
	}
	// The anchor pins the whole period it covers; a horizon-length
	// anchor would pin everything.
	if len(anchor) >= model.DefaultHorizon().Len() {
		log.Printf("  FAIL: anchor covers the full %d hour horizon, nothing left to optimize", model.DefaultHorizon().Len())
		ok = false
	}
	if ok {
		fmt.Println("  OK")
	}
	return ok
}
