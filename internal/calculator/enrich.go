package calculator

import (
	"StockDesk/internal/model"
)

// EnrichImported adds the standard derived columns applied to every freshly
// fetched series: fractional dividend yield, calendar fields, and daily plus
// monthly/quarterly/annual close returns.
func EnrichImported(s *model.Series) (*model.Series, error) {
	out := s.Clone()

	clos, err := out.Column("Close")
	if err != nil {
		return nil, err
	}
	div, err := out.Column("Dividends")
	if err != nil {
		return nil, err
	}
	frac := make([]float64, out.Len())
	for i := range frac {
		frac[i] = div[i] / clos[i]
	}
	out.SetColumn("FracDividends", frac)

	out = AddCalendar(out)
	if out, err = DailyReturns(out, "Close"); err != nil {
		return nil, err
	}
	if out, err = MonthlyReturns(out, "Close"); err != nil {
		return nil, err
	}
	if out, err = QuarterlyReturns(out, "Close"); err != nil {
		return nil, err
	}
	if out, err = AnnualReturns(out, "Close"); err != nil {
		return nil, err
	}
	return out, nil
}
