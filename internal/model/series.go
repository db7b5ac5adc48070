package model

import "time"

// HoursPerYear is the length of the non-leap profile year.
const HoursPerYear = 8760

// HourlyIndex is the arithmetic time axis shared by every series of a
// scenario: Time(i) = Start + i hours, strictly increasing, no gaps.
type HourlyIndex struct {
	Start time.Time
	N     int
}

// DefaultHorizon spans one and a half years of hours from
// 2022-01-01 00:00 UTC.
func DefaultHorizon() HourlyIndex {
	return HourlyIndex{
		Start: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		N:     HoursPerYear * 3 / 2,
	}
}

func (ix HourlyIndex) Len() int { return ix.N }

// Time returns the timestamp of hour i.
func (ix HourlyIndex) Time(i int) time.Time {
	return ix.Start.Add(time.Duration(i) * time.Hour)
}

// End returns the timestamp of the last hour.
func (ix HourlyIndex) End() time.Time { return ix.Time(ix.N - 1) }

// FirstAfter returns the smallest index whose timestamp lies strictly
// after t, or N when no hour does. Regime switches cut over on this rule.
func (ix HourlyIndex) FirstAfter(t time.Time) int {
	if t.Before(ix.Start) {
		return 0
	}
	i := int(t.Sub(ix.Start)/time.Hour) + 1
	if i > ix.N {
		return ix.N
	}
	return i
}

// Stream identifies one of the seven balance series.
type Stream string

const (
	StreamDomDem      Stream = "domDem"
	StreamGHDDem      Stream = "ghdDem"
	StreamElecDem     Stream = "elecDem"
	StreamIndDem      Stream = "indDem"
	StreamExpAndOther Stream = "expAndOther"
	StreamPipeImp     Stream = "pipeImp"
	StreamLNGImp      Stream = "lngImp"
)

// StreamInfo holds display name and role for a stream.
type StreamInfo struct {
	Name   string
	Demand bool
}

// StreamCatalog maps every known Stream to its display name and role.
var StreamCatalog = map[Stream]StreamInfo{
	StreamDomDem:      {Name: "Households", Demand: true},
	StreamGHDDem:      {Name: "Commerce & Services", Demand: true},
	StreamElecDem:     {Name: "Electricity Generation", Demand: true},
	StreamIndDem:      {Name: "Industry", Demand: true},
	StreamExpAndOther: {Name: "Exports & Other", Demand: true},
	StreamPipeImp:     {Name: "Pipeline Imports", Demand: false},
	StreamLNGImp:      {Name: "LNG Imports", Demand: false},
}

// DemandStreams lists the demand streams in result table order.
var DemandStreams = []Stream{
	StreamDomDem,
	StreamElecDem,
	StreamIndDem,
	StreamGHDDem,
	StreamExpAndOther,
}

// SupplyStreams lists the supply streams in result table order.
var SupplyStreams = []Stream{StreamPipeImp, StreamLNGImp}
