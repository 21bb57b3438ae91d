package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrFieldMissing is returned when a referenced column does not exist on a Series.
var ErrFieldMissing = errors.New("field missing")

// Bar represents a single daily price observation.
type Bar struct {
	Date      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Dividends float64
}

// Series is an ordered frame of daily observations for one symbol: a date
// column plus named numeric and label columns of equal length. Missing numeric
// values are NaN.
//
// Transformations never mutate a Series they receive; they clone it and return
// the augmented copy, so callers may reuse one Series across independent
// computations.
type Series struct {
	Symbol string
	Dates  []time.Time

	order   []string
	numeric map[string][]float64
	labels  map[string][]string
}

// NewSeries builds a Series from raw bars, populating the
// Open/High/Low/Close/Volume/Dividends columns. Bars are expected in
// ascending date order; callers must sort beforehand.
func NewSeries(symbol string, bars []Bar) *Series {
	s := &Series{
		Symbol:  symbol,
		Dates:   make([]time.Time, len(bars)),
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
	}
	open := make([]float64, len(bars))
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	clos := make([]float64, len(bars))
	volume := make([]float64, len(bars))
	dividends := make([]float64, len(bars))
	for i, b := range bars {
		s.Dates[i] = b.Date
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		clos[i] = b.Close
		volume[i] = b.Volume
		dividends[i] = b.Dividends
	}
	s.SetColumn("Open", open)
	s.SetColumn("High", high)
	s.SetColumn("Low", low)
	s.SetColumn("Close", clos)
	s.SetColumn("Volume", volume)
	s.SetColumn("Dividends", dividends)
	return s
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Dates) }

// Clone returns a deep copy. Column slices are copied, so writes to the clone
// never reach the original.
func (s *Series) Clone() *Series {
	c := &Series{
		Symbol:  s.Symbol,
		Dates:   append([]time.Time(nil), s.Dates...),
		order:   append([]string(nil), s.order...),
		numeric: make(map[string][]float64, len(s.numeric)),
		labels:  make(map[string][]string, len(s.labels)),
	}
	for name, vals := range s.numeric {
		c.numeric[name] = append([]float64(nil), vals...)
	}
	for name, vals := range s.labels {
		c.labels[name] = append([]string(nil), vals...)
	}
	return c
}

// Column returns the numeric column with the given name. The returned slice is
// the live backing array; callers that intend to write must clone the Series
// first.
func (s *Series) Column(name string) ([]float64, error) {
	vals, ok := s.numeric[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrFieldMissing)
	}
	return vals, nil
}

// Label returns the string column with the given name.
func (s *Series) Label(name string) ([]string, error) {
	vals, ok := s.labels[name]
	if !ok {
		return nil, fmt.Errorf("label column %q: %w", name, ErrFieldMissing)
	}
	return vals, nil
}

// SetColumn adds or replaces a numeric column. The slice length must match the
// row count.
func (s *Series) SetColumn(name string, vals []float64) {
	if len(vals) != len(s.Dates) {
		panic(fmt.Sprintf("series %s: column %q has %d values for %d rows", s.Symbol, name, len(vals), len(s.Dates)))
	}
	if _, exists := s.numeric[name]; !exists {
		if _, isLabel := s.labels[name]; !isLabel {
			s.order = append(s.order, name)
		}
	}
	s.numeric[name] = vals
}

// SetLabel adds or replaces a string column.
func (s *Series) SetLabel(name string, vals []string) {
	if len(vals) != len(s.Dates) {
		panic(fmt.Sprintf("series %s: label %q has %d values for %d rows", s.Symbol, name, len(vals), len(s.Dates)))
	}
	if _, exists := s.labels[name]; !exists {
		if _, isNumeric := s.numeric[name]; !isNumeric {
			s.order = append(s.order, name)
		}
	}
	s.labels[name] = vals
}

// HasColumn reports whether a numeric or label column with the name exists.
func (s *Series) HasColumn(name string) bool {
	if _, ok := s.numeric[name]; ok {
		return true
	}
	_, ok := s.labels[name]
	return ok
}

// ColumnNames returns all column names in insertion order.
func (s *Series) ColumnNames() []string {
	return append([]string(nil), s.order...)
}

// LatestDate returns the maximum date in the series, or the zero time for an
// empty series. Rows are normally sorted, but the scan does not rely on it.
func (s *Series) LatestDate() time.Time {
	var latest time.Time
	for _, d := range s.Dates {
		if d.After(latest) {
			latest = d
		}
	}
	return latest
}

// FilterRows returns a new Series containing only the rows for which keep
// returns true, preserving order and all columns.
func (s *Series) FilterRows(keep func(row int) bool) *Series {
	idx := make([]int, 0, len(s.Dates))
	for i := range s.Dates {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	c := &Series{
		Symbol:  s.Symbol,
		Dates:   make([]time.Time, len(idx)),
		order:   append([]string(nil), s.order...),
		numeric: make(map[string][]float64, len(s.numeric)),
		labels:  make(map[string][]string, len(s.labels)),
	}
	for j, i := range idx {
		c.Dates[j] = s.Dates[i]
	}
	for name, vals := range s.numeric {
		sub := make([]float64, len(idx))
		for j, i := range idx {
			sub[j] = vals[i]
		}
		c.numeric[name] = sub
	}
	for name, vals := range s.labels {
		sub := make([]string, len(idx))
		for j, i := range idx {
			sub[j] = vals[i]
		}
		c.labels[name] = sub
	}
	return c
}

// Missing returns the NaN marker used for absent numeric values.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }
