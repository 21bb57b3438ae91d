package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"StockDesk/internal/model"
)

// ErrInvalidPeriod is returned for period strings that are not "max" or
// "<integer><d|m|y>".
var ErrInvalidPeriod = errors.New("invalid period")

// ReducePeriod truncates the series to a trailing window relative to its
// latest date. "max" returns an unmodified copy; otherwise the period is an
// integer count of days ("5d"), months ("6m") or years ("4y").
func ReducePeriod(s *model.Series, period string) (*model.Series, error) {
	if period == "max" {
		return s.Clone(), nil
	}
	if len(period) < 2 {
		return nil, fmt.Errorf("period %q: %w", period, ErrInvalidPeriod)
	}
	n, err := strconv.Atoi(period[:len(period)-1])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("period %q: %w", period, ErrInvalidPeriod)
	}

	latest := s.LatestDate()
	var cutoff time.Time
	switch period[len(period)-1] {
	case 'd':
		cutoff = latest.AddDate(0, 0, -n)
	case 'm':
		cutoff = latest.AddDate(0, -n, 0)
	case 'y':
		cutoff = latest.AddDate(-n, 0, 0)
	default:
		return nil, fmt.Errorf("period %q: unit must be d, m or y: %w", period, ErrInvalidPeriod)
	}

	return s.FilterRows(func(i int) bool { return !s.Dates[i].Before(cutoff) }), nil
}
