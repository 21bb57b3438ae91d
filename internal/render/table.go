package render

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockDesk/internal/calculator"
	"StockDesk/internal/model"
	"StockDesk/internal/store"
)

// maxCompareSeries caps how many symbols a comparison table shows
// before the output stops being readable on a terminal.
const maxCompareSeries = 8

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

func fnum(v float64) string {
	if model.IsMissing(v) {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}

func fpct(v float64) string {
	if model.IsMissing(v) {
		return ""
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

func fday(t time.Time) string {
	return t.Format("2006-01-02")
}

// SeriesTable renders the last tail rows of the named columns. A tail
// of zero renders every row.
func SeriesTable(w io.Writer, s *model.Series, cols []string, tail int) error {
	for _, c := range cols {
		if !s.HasColumn(c) {
			return fmt.Errorf("render %s: %w: %s", s.Symbol, model.ErrFieldMissing, c)
		}
	}

	start := 0
	if tail > 0 && s.Len() > tail {
		start = s.Len() - tail
	}

	fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(s.Symbol)))
	tw := newTable(w)

	hdr := make(table.Row, 0, len(cols)+1)
	hdr = append(hdr, "DATE")
	for _, c := range cols {
		hdr = append(hdr, strings.ToUpper(c))
	}
	tw.AppendHeader(hdr)

	for i := start; i < s.Len(); i++ {
		row := make(table.Row, 0, len(cols)+1)
		row = append(row, fday(s.Dates[i]))
		for _, c := range cols {
			if vals, err := s.Column(c); err == nil {
				row = append(row, fnum(vals[i]))
			} else if labels, err := s.Label(c); err == nil {
				row = append(row, labels[i])
			} else {
				row = append(row, "")
			}
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}

// CompareTable renders one numeric column across several symbols, one
// column per symbol, aligned on dates where the value is present.
func CompareTable(w io.Writer, series []*model.Series, column string) error {
	if len(series) == 0 {
		return nil
	}
	if len(series) > maxCompareSeries {
		log.Printf("[WARN] comparing %d series, output may be unreadable", len(series))
	}

	type cell struct {
		value float64
		ok    bool
	}
	byDate := make(map[time.Time][]cell)
	var dates []time.Time

	for si, s := range series {
		vals, err := s.Column(column)
		if err != nil {
			return fmt.Errorf("compare %s: %w", s.Symbol, err)
		}
		for i, v := range vals {
			if model.IsMissing(v) {
				continue
			}
			d := s.Dates[i]
			if _, seen := byDate[d]; !seen {
				byDate[d] = make([]cell, len(series))
				dates = append(dates, d)
			}
			byDate[d][si] = cell{value: v, ok: true}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	tw := newTable(w)
	hdr := make(table.Row, 0, len(series)+1)
	hdr = append(hdr, "DATE")
	for _, s := range series {
		hdr = append(hdr, strings.ToUpper(s.Symbol))
	}
	tw.AppendHeader(hdr)

	for _, d := range dates {
		row := make(table.Row, 0, len(series)+1)
		row = append(row, fday(d))
		for _, c := range byDate[d] {
			if c.ok {
				row = append(row, fpct(c.value))
			} else {
				row = append(row, "")
			}
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}

// TradesTable renders the trade history rows for one symbol.
func TradesTable(w io.Writer, symbol string, rows []model.TradeRow) {
	fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(symbol)))
	tw := newTable(w)
	tw.AppendHeader(table.Row{"DATE", "ACTION", "QTY", "PRICE", "HOLDING", "REALIZED", "UNREALIZED"})
	for _, r := range rows {
		tw.AppendRow(table.Row{
			fday(r.Date), string(r.Action),
			fmt.Sprintf("%.0f", r.Quantity), fnum(r.Price),
			fmt.Sprintf("%.0f", r.Holding), fnum(r.Realized), fnum(r.Unrealized),
		})
	}
	tw.Render()
}

// SummaryTable renders per-symbol valuation summaries with a totals
// footer across the whole portfolio.
func SummaryTable(w io.Writer, summaries []model.SymbolSummary) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{
		"SYMBOL", "AVG PRICE", "CUR PRICE", "HOLDING",
		"INVESTED", "REALIZED", "UNREALIZED", "GAIN", "GAIN %",
	})

	var invested, realized, unrealized, gain float64
	for _, s := range summaries {
		tw.AppendRow(table.Row{
			s.Symbol, fnum(s.AverageBoughtPrice), fnum(s.CurrentPrice),
			fmt.Sprintf("%.0f", s.CurrentHolding),
			fnum(s.CurrentInvested), fnum(s.RealizedAmount),
			fnum(s.UnrealizedAmount), fnum(s.UnrealizedGain),
			fpct(s.PercentUnrealized),
		})
		invested += s.CurrentInvested
		realized += s.RealizedAmount
		unrealized += s.UnrealizedAmount
		gain += s.UnrealizedGain
	}

	pct := model.Missing()
	if invested != 0 {
		pct = gain / invested
	}
	tw.AppendFooter(table.Row{
		"TOTAL", "", "", "",
		fnum(invested), fnum(realized), fnum(unrealized), fnum(gain), fpct(pct),
	})
	tw.Render()
}

// CatalogTable renders the tracked symbol catalog.
func CatalogTable(w io.Writer, entries []store.CatalogEntry) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"SYMBOL", "FIRST", "LAST", "BARS"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Symbol, fday(e.FirstDate), fday(e.LastDate), e.Bars})
	}
	tw.Render()
}

// DividendTable renders dividend yield summaries.
func DividendTable(w io.Writer, summaries []calculator.DividendSummary) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"SYMBOL", "OVERALL AVG", "5Y AVG", "YEAR", "YEAR AVG"})
	for _, d := range summaries {
		tw.AppendRow(table.Row{
			d.Symbol, fpct(d.OverallAverage), fpct(d.FiveYearAverage),
			d.Year, fpct(d.YearAverage),
		})
	}
	tw.Render()
}
