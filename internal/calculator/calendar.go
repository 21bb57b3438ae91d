package calculator

import (
	"fmt"

	"StockDesk/internal/model"
)

// AddCalendar derives year, month, quarter (1-4) and the "{year}-Q{quarter}"
// label from each row's date. Every row gets a value.
func AddCalendar(s *model.Series) *model.Series {
	out := s.Clone()
	n := out.Len()
	year := make([]float64, n)
	month := make([]float64, n)
	quarter := make([]float64, n)
	q := make([]string, n)
	for i, d := range out.Dates {
		y, m, _ := d.Date()
		qt := (int(m)-1)/3 + 1
		year[i] = float64(y)
		month[i] = float64(int(m))
		quarter[i] = float64(qt)
		q[i] = fmt.Sprintf("%d-Q%d", y, qt)
	}
	out.SetColumn("year", year)
	out.SetColumn("month", month)
	out.SetColumn("quarter", quarter)
	out.SetLabel("Q", q)
	return out
}
