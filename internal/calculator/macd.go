package calculator

import (
	"fmt"

	"StockDesk/internal/model"
)

// MACD adds the convergence/divergence family to the series: EMA_12 and
// EMA_26 of priceField, MACD (their difference), DEA (9-span exponential
// average of MACD, the signal line) and OSC (MACD minus DEA).
func MACD(s *model.Series, priceField string) (*model.Series, error) {
	out, err := ExponentialMovingAverage(s, priceField, []int{12, 26})
	if err != nil {
		return nil, err
	}

	ema12, _ := out.Column("EMA_12")
	ema26, _ := out.Column("EMA_26")

	macd := make([]float64, out.Len())
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	out.SetColumn("MACD", macd)

	dea := expSmooth(macd, 9)
	out.SetColumn("DEA", dea)

	osc := make([]float64, out.Len())
	for i := range osc {
		osc[i] = macd[i] - dea[i]
	}
	out.SetColumn("OSC", osc)
	return out, nil
}

// Crossing classifies a MACD/signal-line crossing.
type Crossing int

const (
	CrossingNone Crossing = iota
	CrossingBullish          // MACD crossed above DEA with both positive
	CrossingBearish          // MACD crossed below DEA with both negative
)

// MACDCrossingAt classifies the crossing at row i of a series that already
// carries MACD and DEA columns. Row 0 has no prior row and is never a
// crossing.
func MACDCrossingAt(s *model.Series, i int) (Crossing, error) {
	macd, err := s.Column("MACD")
	if err != nil {
		return CrossingNone, err
	}
	dea, err := s.Column("DEA")
	if err != nil {
		return CrossingNone, err
	}
	if i < 0 || i >= len(macd) {
		return CrossingNone, fmt.Errorf("row %d out of range [0,%d): %w", i, len(macd), ErrInvalidArgument)
	}
	if i == 0 {
		return CrossingNone, nil
	}
	if macd[i-1] <= dea[i-1] && macd[i] > dea[i] && macd[i] > 0 && dea[i] > 0 {
		return CrossingBullish, nil
	}
	if macd[i-1] >= dea[i-1] && macd[i] < dea[i] && macd[i] < 0 && dea[i] < 0 {
		return CrossingBearish, nil
	}
	return CrossingNone, nil
}
