package calculator

import (
	"errors"
	"fmt"
	"strconv"

	"StockDesk/internal/argutil"
	"StockDesk/internal/model"
)

// ErrInvalidArgument is returned for out-of-range windows and unrecognized
// enum-like string arguments.
var ErrInvalidArgument = errors.New("invalid argument")

// Method selects which moving-average computation to apply.
type Method int

const (
	MethodSimple Method = iota
	MethodExponential
)

// SimpleMovingAverage adds an SMA_<window> column for every (field, window)
// pair. fields accepts a column name or list of names; windows accepts an int
// or list of ints. The "(<field>)" suffix is appended only when more than one
// source field was requested. The first window-1 rows of each column are
// missing.
func SimpleMovingAverage(s *model.Series, fields, windows any) (*model.Series, error) {
	return MovingAverage(s, MethodSimple, fields, windows)
}

// ExponentialMovingAverage adds an EMA_<window> column for every
// (field, window) pair, naming columns like SimpleMovingAverage. The window
// acts as a span parameter (alpha = 2/(span+1)); the first row seeds at the
// first observation, so unlike the simple variant no leading rows are missing.
func ExponentialMovingAverage(s *model.Series, fields, windows any) (*model.Series, error) {
	return MovingAverage(s, MethodExponential, fields, windows)
}

// MovingAverage computes moving averages using the given method.
func MovingAverage(s *model.Series, method Method, fields, windows any) (*model.Series, error) {
	cols, err := argutil.Normalize[string](fields)
	if err != nil {
		return nil, fmt.Errorf("source fields: %w", err)
	}
	wins, err := argutil.Normalize[int](windows)
	if err != nil {
		return nil, fmt.Errorf("windows: %w", err)
	}

	var prefix string
	switch method {
	case MethodSimple:
		prefix = "SMA_"
	case MethodExponential:
		prefix = "EMA_"
	default:
		return nil, fmt.Errorf("moving-average method %d: %w", method, ErrInvalidArgument)
	}

	out := s.Clone()
	for _, col := range cols {
		src, err := out.Column(col)
		if err != nil {
			return nil, err
		}
		for _, w := range wins {
			if w < 1 {
				return nil, fmt.Errorf("window %d must be positive: %w", w, ErrInvalidArgument)
			}
			name := prefix + strconv.Itoa(w)
			if len(cols) > 1 {
				name += "(" + col + ")"
			}
			if method == MethodSimple {
				out.SetColumn(name, rollingMean(src, w))
			} else {
				out.SetColumn(name, expSmooth(src, w))
			}
		}
	}
	return out, nil
}

// rollingMean computes the trailing arithmetic mean over a fixed window,
// marking rows with insufficient history as missing.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= window {
			sum -= vals[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = model.Missing()
		}
	}
	return out
}

// expSmooth applies the span-parameterized exponential recurrence, seeded at
// the first observation. Every row after the first blends the new value with
// the prior average, so the output converges from the start instead of after a
// warm-up window.
func expSmooth(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}
