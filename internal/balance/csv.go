package balance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var resultHeader = []string{
	"time",
	"pipeImp", "pipeImp_served",
	"lngImp", "lngImp_served",
	"domDem", "domDem_served",
	"elecDem", "elecDem_served",
	"indDem", "indDem_served",
	"ghdDem", "ghdDem_served",
	"exp_n_oth", "exp_n_oth_served",
	"soc", "soc_slack",
}

// WriteResultCSV writes the hourly result table, one row per
// non-terminal hour.
func WriteResultCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("writing result header: %w", err)
	}
	record := make([]string, len(resultHeader))
	for i, r := range rows {
		record[0] = r.Time.Format(paramTimeLayout)
		for j, v := range []float64{
			r.PipeImp, r.PipeImpServed,
			r.LNGImp, r.LNGImpServed,
			r.DomDem, r.DomDemServed,
			r.ElecDem, r.ElecDemServed,
			r.IndDem, r.IndDemServed,
			r.GHDDem, r.GHDDemServed,
			r.ExpAndOther, r.ExpAndOtherServed,
			r.Soc, r.SocSlack,
		} {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing result row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParamsCSV writes the input echo table.
func WriteParamsCSV(w io.Writer, params []Param) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"parameter", "value"}); err != nil {
		return fmt.Errorf("writing params header: %w", err)
	}
	for _, p := range params {
		if err := cw.Write([]string{p.Key, p.Value}); err != nil {
			return fmt.Errorf("writing param %s: %w", p.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
