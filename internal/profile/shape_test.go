package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_balance/internal/model"
)

// shapeCSV renders a profile table with n data rows where the household
// column carries weight(i) and a second column carries a decoy value.
func shapeCSV(n int, weight func(i int) float64) string {
	var b strings.Builder
	b.WriteString("time,Private Haushalte,GHD\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "h%d,%s,0.5\n", i, strconv.FormatFloat(weight(i), 'g', -1, 64))
	}
	return b.String()
}

func TestShapeParser(t *testing.T) {
	csv := shapeCSV(model.HoursPerYear, func(i int) float64 { return 1.0 / model.HoursPerYear })

	shape, err := NewShapeParser(DefaultColumn).Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Len(t, shape, model.HoursPerYear)
	// The household column, not the 0.5 decoy column, must be extracted.
	assert.InDelta(t, 1.0/8760, shape[0], 1e-12)
	assert.InDelta(t, 1.0/8760, shape[8759], 1e-12)
}

func TestShapeParserColumnMissing(t *testing.T) {
	csv := "time,GHD\nh0,0.5\n"

	_, err := NewShapeParser(DefaultColumn).Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "not found")
}

func TestShapeParserBadWeight(t *testing.T) {
	csv := "time,Private Haushalte,GHD\nh0,0.1,0.5\nh1,not-a-number,0.5\n"

	_, err := NewShapeParser(DefaultColumn).Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "line 3")
}

func TestShapeParserWrongLength(t *testing.T) {
	csv := shapeCSV(100, func(i int) float64 { return 0.01 })

	_, err := NewShapeParser(DefaultColumn).Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "100 rows")
}

func TestFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.csv")
	csv := shapeCSV(model.HoursPerYear, func(i int) float64 { return 1.0 / model.HoursPerYear })
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	shape, err := FileShape{Path: path, Column: DefaultColumn}.NormalizedShape()
	require.NoError(t, err)
	assert.Len(t, shape, model.HoursPerYear)

	_, err = FileShape{Path: filepath.Join(t.TempDir(), "missing.csv"), Column: DefaultColumn}.NormalizedShape()
	assert.Error(t, err)
}

func TestStaticShape(t *testing.T) {
	shape, err := StaticShape{0.1, 0.2}.NormalizedShape()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, shape)
}
