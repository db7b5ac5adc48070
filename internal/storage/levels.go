// Package storage loads the aggregated national storage inventory that
// anchors simulated fill levels to their historical trajectory.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TotalCapacityTWh is the fixed working volume of the aggregated storage
// fleet.
const TotalCapacityTWh = 1100.0

// ErrYearNotFound reports that the level table carries no rows for the
// requested anchor year.
var ErrYearNotFound = errors.New("storage: no levels for requested year")

// DailyLevel is one fill observation, TWh in storage on a gas day.
type DailyLevel struct {
	Day   time.Time
	Level float64
}

// LevelsParser parses aggregated storage inventory CSV exports.
//
// Expected format:
//
//	gasDayStartedOn,gasInStorage
//	2022-01-01,547.81
//
// Rows with unparseable values are skipped; filtering and ordering happen
// in AnchorForYear.
type LevelsParser struct{}

func (p *LevelsParser) Parse(r io.Reader) ([]DailyLevel, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading levels header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var levels []DailyLevel
	lineNum := 1 // header was line 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading levels line %d: %w", lineNum, err)
		}

		level, err := parseRecord(record, lineNum)
		if err != nil {
			// Skip rows without a usable observation
			continue
		}

		levels = append(levels, level)
	}

	return levels, nil
}

func validateHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("expected at least 2 columns, got %d", len(header))
	}

	expected := []string{"gasDayStartedOn", "gasInStorage"}
	for i, col := range expected {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i, col, header[i])
		}
	}

	return nil
}

func parseRecord(record []string, lineNum int) (DailyLevel, error) {
	if len(record) < 2 {
		return DailyLevel{}, fmt.Errorf("line %d: expected 2 fields, got %d", lineNum, len(record))
	}

	day, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		// Try the exported timestamp variant
		day, err = time.Parse("2006-01-02 15:04:05", strings.TrimSpace(record[0]))
		if err != nil {
			return DailyLevel{}, fmt.Errorf("line %d: parsing day %q: %w", lineNum, record[0], err)
		}
	}

	level, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return DailyLevel{}, fmt.Errorf("line %d: parsing level %q: %w", lineNum, record[1], err)
	}

	return DailyLevel{Day: day, Level: level}, nil
}

// AnchorForYear picks the levels of one calendar year, orders them
// chronologically and expands each day to 24 identical hourly values.
// No interpolation: the anchor is a step function.
func AnchorForYear(levels []DailyLevel, year int) ([]float64, error) {
	var days []DailyLevel
	for _, l := range levels {
		if l.Day.Year() == year {
			days = append(days, l)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })

	anchor := make([]float64, 0, len(days)*24)
	for _, d := range days {
		for h := 0; h < 24; h++ {
			anchor = append(anchor, d.Level)
		}
	}
	return anchor, nil
}

// FileSource loads capacity and the hourly anchor for one year from a
// CSV file.
type FileSource struct {
	Path string
	Year int
}

func (f FileSource) StorageAnchor() (float64, []float64, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return 0, nil, fmt.Errorf("opening storage levels: %w", err)
	}
	defer file.Close()

	levels, err := (&LevelsParser{}).Parse(file)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	anchor, err := AnchorForYear(levels, f.Year)
	if err != nil {
		return 0, nil, err
	}
	return TotalCapacityTWh, anchor, nil
}

// Static serves a fixed capacity and anchor, mainly for tests and
// programmatic callers.
type Static struct {
	Capacity float64
	Anchor   []float64
}

func (s Static) StorageAnchor() (float64, []float64, error) {
	return s.Capacity, s.Anchor, nil
}
