package collector

import (
	"time"

	"StockDesk/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns daily bars for symbol starting at since.
	// A zero since requests the full available history.
	FetchHistory(symbol string, since time.Time) ([]model.Bar, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
