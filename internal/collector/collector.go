package collector

import (
	"fmt"
	"log"
	"sort"
	"time"

	"StockDesk/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	History []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ string, since time.Time) ([]model.Bar, error) {
	bars := m.History
	if bars == nil {
		bars = generateMockBars(m.Price, 300)
	}
	if since.IsZero() {
		return bars, nil
	}
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		if !b.Date.Before(since) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches price history and cleans it up for storage.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// History fetches daily bars since the given date, sorted by date with
// duplicate days collapsed to the latest bar.
func (c *Collector) History(symbol string, since time.Time) ([]model.Bar, error) {
	bars, err := c.Fetcher.FetchHistory(symbol, since)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch history for %s: no bars returned", symbol)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	deduped := bars[:0]
	dropped := 0
	for _, b := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
			deduped[n-1] = b
			dropped++
			continue
		}
		deduped = append(deduped, b)
	}
	if dropped > 0 {
		log.Printf("[WARN] %s: collapsed %d duplicate bars from %s", symbol, dropped, c.Fetcher.Name())
	}
	return deduped, nil
}
