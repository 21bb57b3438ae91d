package calculator

import (
	"errors"
	"testing"
	"time"

	"StockDesk/internal/model"
)

func TestAverageReturnsSummary_RenamesPerPeriod(t *testing.T) {
	bars := []model.Bar{
		{Date: day(2023, time.January, 2), Close: 100},
		{Date: day(2023, time.January, 31), Close: 110},
		{Date: day(2023, time.February, 28), Close: 121},
	}
	s := AddCalendar(barSeries("TEST", bars))
	s, err := DailyReturns(s, "Close")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		period string
		column string
	}{
		{"monthly", "DailyReturns-averaged-Monthly"},
		{"Monthly", "DailyReturns-averaged-Monthly"},
		{"QUARTERLY", "DailyReturns-averaged-Quarterly"},
		{"annually", "DailyReturns-averaged-Annually"},
	}
	for _, tt := range tests {
		out, err := AverageReturnsSummary(s, "DailyReturns", tt.period)
		if err != nil {
			t.Fatalf("period %q: unexpected error: %v", tt.period, err)
		}
		if !out.HasColumn(tt.column) {
			t.Errorf("period %q: expected column %q", tt.period, tt.column)
		}
	}
}

func TestAverageReturnsSummary_InvalidPeriod(t *testing.T) {
	s := AddCalendar(daySeries("TEST", testStart, []float64{1, 2}))
	_, err := AverageReturnsSummary(s, "Close", "weekly")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSummarizeDividends(t *testing.T) {
	bars := []model.Bar{
		{Date: day(2016, time.March, 1), Close: 100, Dividends: 1},   // 0.01, outside five-year window
		{Date: day(2019, time.March, 1), Close: 100, Dividends: 2},   // 0.02
		{Date: day(2022, time.June, 1), Close: 100, Dividends: 3},    // 0.03
		{Date: day(2023, time.September, 1), Close: 100, Dividends: 4}, // 0.04, most recent complete year
		{Date: day(2023, time.December, 1), Close: 100},              // no dividend, filtered out
	}
	s, err := EnrichImported(barSeries("div", bars))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	asOf := day(2024, time.June, 15)
	sum, err := SummarizeDividends(s, "div", "FracDividends", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Symbol != "DIV" {
		t.Errorf("expected upper-cased symbol, got %q", sum.Symbol)
	}
	if sum.Year != 2023 {
		t.Errorf("expected reference year 2023, got %d", sum.Year)
	}
	if !approx(sum.OverallAverage, (0.01+0.02+0.03+0.04)/4) {
		t.Errorf("overall average: got %v", sum.OverallAverage)
	}
	// Five complete years before 2024: year >= 2018.
	if !approx(sum.FiveYearAverage, (0.02+0.03+0.04)/3) {
		t.Errorf("five-year average: got %v", sum.FiveYearAverage)
	}
	if !approx(sum.YearAverage, 0.04) {
		t.Errorf("last-year average: got %v", sum.YearAverage)
	}
}

func TestSummarizeDividends_NoPayouts(t *testing.T) {
	s, err := EnrichImported(daySeries("TEST", testStart, []float64{10, 11, 12}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum, err := SummarizeDividends(s, "test", "FracDividends", day(2024, time.January, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !model.IsMissing(sum.OverallAverage) {
		t.Errorf("expected missing mean with no payouts, got %v", sum.OverallAverage)
	}
}

func TestSummarizeDividends_MissingYieldField(t *testing.T) {
	s := daySeries("TEST", testStart, []float64{1})
	_, err := SummarizeDividends(s, "test", "FracDividends", time.Now())
	if !errors.Is(err, model.ErrFieldMissing) {
		t.Errorf("expected ErrFieldMissing, got %v", err)
	}
}
