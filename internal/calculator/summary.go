package calculator

import (
	"fmt"
	"strings"
	"time"

	"StockDesk/internal/model"
)

// AverageReturnsSummary re-derives calendar-bucketed returns over baseField
// for the given period ("monthly", "quarterly" or "annually",
// case-insensitive), naming the result "<baseField>-averaged-<Period>".
func AverageReturnsSummary(s *model.Series, baseField, period string) (*model.Series, error) {
	switch strings.ToLower(period) {
	case "monthly":
		return GroupedReturns(s, baseField+"-averaged-Monthly", baseField, []string{"year", "month"})
	case "quarterly":
		return GroupedReturns(s, baseField+"-averaged-Quarterly", baseField, "Q")
	case "annually":
		return GroupedReturns(s, baseField+"-averaged-Annually", baseField, "year")
	default:
		return nil, fmt.Errorf("average period %q must be one of monthly, quarterly, annually: %w", period, ErrInvalidArgument)
	}
}

// DividendSummary summarizes a symbol's dividend-yield history.
type DividendSummary struct {
	Symbol          string
	OverallAverage  float64
	FiveYearAverage float64 // trailing five complete years
	Year            int     // most recent complete year
	YearAverage     float64
}

// SummarizeDividends reduces the rows where yieldField is present and
// positive to mean yields: overall, over the five complete years before the
// current one, and over the most recent complete year. asOf supplies the
// wall-clock reference; production callers pass time.Now(), tests pass a
// fixture.
func SummarizeDividends(s *model.Series, symbol, yieldField string, asOf time.Time) (DividendSummary, error) {
	yield, err := s.Column(yieldField)
	if err != nil {
		return DividendSummary{}, err
	}
	years, err := s.Column("year")
	if err != nil {
		return DividendSummary{}, err
	}

	lastYear := asOf.Year() - 1
	fiveYearsAgo := lastYear - 5

	var overall, five, last meanAcc
	for i, v := range yield {
		if model.IsMissing(v) || v <= 0 {
			continue
		}
		overall.add(v)
		if years[i] >= float64(fiveYearsAgo) {
			five.add(v)
		}
		if years[i] >= float64(lastYear) {
			last.add(v)
		}
	}

	return DividendSummary{
		Symbol:          strings.ToUpper(symbol),
		OverallAverage:  overall.mean(),
		FiveYearAverage: five.mean(),
		Year:            lastYear,
		YearAverage:     last.mean(),
	}, nil
}

type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) { a.sum += v; a.n++ }

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return model.Missing()
	}
	return a.sum / float64(a.n)
}
