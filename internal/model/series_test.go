package model

import (
	"errors"
	"testing"
	"time"
)

func testBars(closes ...float64) []Bar {
	bars := make([]Bar, len(closes))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = Bar{Date: base.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return bars
}

func TestNewSeriesColumns(t *testing.T) {
	s := NewSeries("TEST", testBars(10, 11, 12))
	if s.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", s.Len())
	}
	for _, col := range []string{"Open", "High", "Low", "Close", "Volume", "Dividends"} {
		if !s.HasColumn(col) {
			t.Errorf("missing column %s", col)
		}
	}
	clos, err := s.Column("Close")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clos[2] != 12 {
		t.Errorf("expected close 12, got %v", clos[2])
	}
}

func TestColumnMissing(t *testing.T) {
	s := NewSeries("TEST", testBars(10))
	if _, err := s.Column("Nope"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("expected ErrFieldMissing, got %v", err)
	}
	if _, err := s.Label("Nope"); !errors.Is(err, ErrFieldMissing) {
		t.Errorf("expected ErrFieldMissing, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSeries("TEST", testBars(10, 11))
	c := s.Clone()

	vals, _ := c.Column("Close")
	vals[0] = 999
	c.SetColumn("Extra", []float64{1, 2})

	orig, _ := s.Column("Close")
	if orig[0] != 10 {
		t.Errorf("clone write leaked into original: %v", orig[0])
	}
	if s.HasColumn("Extra") {
		t.Error("column added to clone appeared on original")
	}
}

func TestFilterRows(t *testing.T) {
	s := NewSeries("TEST", testBars(10, 11, 12, 13))
	cut := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	f := s.FilterRows(func(row int) bool { return !s.Dates[row].Before(cut) })

	if f.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Len())
	}
	clos, _ := f.Column("Close")
	if clos[0] != 12 || clos[1] != 13 {
		t.Errorf("unexpected filtered closes: %v", clos)
	}
	if s.Len() != 4 {
		t.Error("filter must not mutate the source")
	}
}

func TestSetColumnLengthMismatchPanics(t *testing.T) {
	s := NewSeries("TEST", testBars(10, 11))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	s.SetColumn("Bad", []float64{1})
}

func TestLatestDate(t *testing.T) {
	s := NewSeries("TEST", testBars(10, 11, 12))
	want := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	if !s.LatestDate().Equal(want) {
		t.Errorf("expected %v, got %v", want, s.LatestDate())
	}
	empty := NewSeries("TEST", nil)
	if !empty.LatestDate().IsZero() {
		t.Error("empty series should have zero latest date")
	}
}
