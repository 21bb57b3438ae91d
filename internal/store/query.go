package store

import (
	"fmt"
	"log"
	"time"

	"StockDesk/internal/calculator"
	"StockDesk/internal/model"
)

// Load reads the stored history for symbol and returns it as an
// enriched series with calendar and return columns attached.
func (s *Store) Load(symbol string) (*model.Series, error) {
	symbol = normalize(symbol)
	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume, dividends
		FROM bars WHERE symbol = ? ORDER BY date`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query bars for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var ts int64
		var b model.Bar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.Dividends); err != nil {
			return nil, fmt.Errorf("scan bar for %s: %w", symbol, err)
		}
		b.Date = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}

	return calculator.EnrichImported(model.NewSeries(symbol, bars))
}

// LoadAll loads every tracked symbol, skipping symbols that fail with a
// warning.
func (s *Store) LoadAll() (map[string]*model.Series, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.Series, len(catalog))
	for _, e := range catalog {
		series, err := s.Load(e.Symbol)
		if err != nil {
			log.Printf("[WARN] load %s: %v", e.Symbol, err)
			continue
		}
		out[e.Symbol] = series
	}
	return out, nil
}

// Catalog lists all tracked symbols with their stored date range.
func (s *Store) Catalog() ([]CatalogEntry, error) {
	rows, err := s.db.Query(`SELECT symbol, MIN(date), MAX(date), COUNT(*)
		FROM bars GROUP BY symbol ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var first, last int64
		if err := rows.Scan(&e.Symbol, &first, &last, &e.Bars); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		e.FirstDate = time.Unix(first, 0).UTC()
		e.LastDate = time.Unix(last, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LatestClose returns the most recent stored closing price for symbol.
func (s *Store) LatestClose(symbol string) (float64, error) {
	symbol = normalize(symbol)
	var close float64
	err := s.db.QueryRow(`SELECT close FROM bars WHERE symbol = ?
		ORDER BY date DESC LIMIT 1`, symbol).Scan(&close)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	return close, nil
}

// ClosePrice returns the closing price for symbol on the given date, or the
// nearest earlier trading day when that date has no bar.
func (s *Store) ClosePrice(symbol string, date time.Time) (float64, error) {
	symbol = normalize(symbol)
	var close float64
	err := s.db.QueryRow(`SELECT close FROM bars WHERE symbol = ? AND date <= ?
		ORDER BY date DESC LIMIT 1`, symbol, date.Unix()).Scan(&close)
	if err != nil {
		return 0, fmt.Errorf("%s at %s: %w", symbol, date.Format("2006-01-02"), ErrSymbolNotFound)
	}
	return close, nil
}

// CurrentPrice returns the live price for symbol, falling back to the
// latest stored close when the fetch fails. It satisfies the price
// lookup needed for portfolio valuation.
func (s *Store) CurrentPrice(symbol string) (float64, error) {
	symbol = normalize(symbol)
	price, err := s.collector.Fetcher.FetchCurrentPrice(symbol)
	if err == nil && price > 0 {
		return price, nil
	}
	log.Printf("[WARN] live price for %s unavailable (%v), using stored close", symbol, err)
	return s.LatestClose(symbol)
}
