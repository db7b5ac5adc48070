package profile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gas_balance/internal/model"
)

// DefaultColumn is the household profile column of the standard load
// shape export.
const DefaultColumn = "Private Haushalte"

// ShapeParser extracts one column of a normalized hourly profile table.
//
// Expected format:
//
//	time,Private Haushalte,GHD,Industrie
//	2021-01-01 00:00,0.000135,0.000114,0.000109
//
// Values are dimensionless hourly weights that sum to 1 over one year;
// the table must cover exactly 8760 hours.
type ShapeParser struct {
	// Column is the header name of the profile to extract.
	Column string
}

func NewShapeParser(column string) *ShapeParser {
	return &ShapeParser{Column: column}
}

func (p *ShapeParser) Parse(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading shape header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == p.Column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("shape column %q not found in header", p.Column)
	}

	shape := make([]float64, 0, model.HoursPerYear)
	lineNum := 1 // header was line 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading shape line %d: %w", lineNum, err)
		}
		if col >= len(record) {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", lineNum, col+1, len(record))
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing weight %q: %w", lineNum, record[col], err)
		}
		shape = append(shape, v)
	}

	if len(shape) != model.HoursPerYear {
		return nil, fmt.Errorf("shape column %q has %d rows, want %d", p.Column, len(shape), model.HoursPerYear)
	}

	return shape, nil
}

// FileShape loads a normalized shape column from a CSV file on demand.
type FileShape struct {
	Path   string
	Column string
}

func (f FileShape) NormalizedShape() ([]float64, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening shape file: %w", err)
	}
	defer file.Close()

	shape, err := NewShapeParser(f.Column).Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return shape, nil
}

// StaticShape serves a fixed in-memory shape.
type StaticShape []float64

func (s StaticShape) NormalizedShape() ([]float64, error) { return s, nil }
