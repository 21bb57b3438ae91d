package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"StockDesk/internal/argutil"
	"StockDesk/internal/model"
)

// ErrInvalidGrouping is returned when grouped returns reference columns that
// do not exist.
var ErrInvalidGrouping = errors.New("invalid grouping")

// DailyReturns adds a DailyReturns column: (price[t]-price[t-1])/price[t-1].
// The first row has no prior observation and is missing.
func DailyReturns(s *model.Series, priceField string) (*model.Series, error) {
	out := s.Clone()
	price, err := out.Column(priceField)
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(price))
	for i := range ret {
		if i == 0 {
			ret[i] = model.Missing()
			continue
		}
		ret[i] = (price[i] - price[i-1]) / price[i-1]
	}
	out.SetColumn("DailyReturns", ret)
	return out, nil
}

// GroupedReturns groups rows by the composite key of groupFields, computes
// (last-first)/first of priceField within each group (skipping missing
// values), and joins the result back by exact date equality with the group's
// last date. Only the row that is the group's last date receives the value;
// every other row in the group is missing. The join marks period boundaries
// rather than broadcasting a uniform value across the period.
func GroupedReturns(s *model.Series, newField, priceField string, groupFields any) (*model.Series, error) {
	fields, err := argutil.Normalize[string](groupFields)
	if err != nil {
		return nil, fmt.Errorf("group fields: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no group fields given: %w", ErrInvalidGrouping)
	}

	out := s.Clone()
	price, err := out.Column(priceField)
	if err != nil {
		return nil, err
	}
	keys, err := rowKeys(out, fields)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		first, last float64
		seen        bool
		lastDate    time.Time
	}
	buckets := make(map[string]*bucket)
	var order []string
	for i, k := range keys {
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
			order = append(order, k)
		}
		if v := price[i]; !model.IsMissing(v) {
			if !b.seen {
				b.first = v
				b.seen = true
			}
			b.last = v
		}
		b.lastDate = out.Dates[i]
	}

	marks := make(map[time.Time]float64, len(buckets))
	for _, k := range order {
		b := buckets[k]
		if !b.seen {
			continue
		}
		marks[b.lastDate] = (b.last - b.first) / b.first
	}

	col := make([]float64, out.Len())
	for i := range col {
		if v, ok := marks[out.Dates[i]]; ok {
			col[i] = v
		} else {
			col[i] = model.Missing()
		}
	}
	out.SetColumn(newField, col)
	return out, nil
}

// MonthlyReturns computes per-calendar-month returns of priceField.
func MonthlyReturns(s *model.Series, priceField string) (*model.Series, error) {
	return GroupedReturns(s, "MonthlyReturns", priceField, []string{"year", "month"})
}

// QuarterlyReturns computes per-quarter returns of priceField.
func QuarterlyReturns(s *model.Series, priceField string) (*model.Series, error) {
	return GroupedReturns(s, "QuarterlyReturns", priceField, "Q")
}

// AnnualReturns computes per-year returns of priceField.
func AnnualReturns(s *model.Series, priceField string) (*model.Series, error) {
	return GroupedReturns(s, "AnnualReturns", priceField, "year")
}

// rowKeys builds the composite group key for every row. Numeric and label
// columns may both serve as group fields.
func rowKeys(s *model.Series, fields []string) ([]string, error) {
	parts := make([]func(int) string, 0, len(fields))
	for _, f := range fields {
		if vals, err := s.Column(f); err == nil {
			v := vals
			parts = append(parts, func(i int) string { return strconv.FormatFloat(v[i], 'g', -1, 64) })
			continue
		}
		if vals, err := s.Label(f); err == nil {
			v := vals
			parts = append(parts, func(i int) string { return v[i] })
			continue
		}
		return nil, fmt.Errorf("group field %q not in series: %w", f, ErrInvalidGrouping)
	}

	keys := make([]string, s.Len())
	for i := range keys {
		var b strings.Builder
		for j, part := range parts {
			if j > 0 {
				b.WriteByte('|')
			}
			b.WriteString(part(i))
		}
		keys[i] = b.String()
	}
	return keys, nil
}
