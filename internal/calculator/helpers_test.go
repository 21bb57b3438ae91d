package calculator

import (
	"math"
	"time"

	"StockDesk/internal/model"
)

// daySeries builds a series of consecutive daily bars where every price field
// equals the given close.
func daySeries(symbol string, start time.Time, closes []float64) *model.Series {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.NewSeries(symbol, bars)
}

// barSeries builds a series from explicit bars.
func barSeries(symbol string, bars []model.Bar) *model.Series {
	return model.NewSeries(symbol, bars)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
