package store

import (
	"errors"
	"fmt"
	"log"
	"time"

	"StockDesk/internal/model"
)

// Add fetches the full available history for each new symbol and stores
// it. Symbols already present are skipped with a warning. Failures are
// isolated per symbol and joined into the returned error.
func (s *Store) Add(symbols ...string) error {
	var errs []error
	for _, sym := range symbols {
		sym = normalize(sym)
		known, err := s.Has(sym)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if known {
			log.Printf("[WARN] %s already tracked, skipping add", sym)
			continue
		}
		if err := s.refresh(sym, time.Time{}); err != nil {
			log.Printf("[WARN] add %s failed: %v", sym, err)
			errs = append(errs, fmt.Errorf("add %s: %w", sym, err))
		}
	}
	return errors.Join(errs...)
}

// Update refreshes stored history for each symbol from its last stored
// date onward. Unknown symbols fail with ErrSymbolNotFound; failures
// are isolated per symbol.
func (s *Store) Update(symbols ...string) error {
	var errs []error
	for _, sym := range symbols {
		sym = normalize(sym)
		last, err := s.lastDate(sym)
		if err != nil {
			log.Printf("[WARN] update %s failed: %v", sym, err)
			errs = append(errs, fmt.Errorf("update %s: %w", sym, err))
			continue
		}
		if err := s.refresh(sym, last); err != nil {
			log.Printf("[WARN] update %s failed: %v", sym, err)
			errs = append(errs, fmt.Errorf("update %s: %w", sym, err))
		}
	}
	return errors.Join(errs...)
}

// AddOrUpdate adds symbols not yet tracked and updates the rest.
func (s *Store) AddOrUpdate(symbols ...string) error {
	var errs []error
	for _, sym := range symbols {
		sym = normalize(sym)
		known, err := s.Has(sym)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if known {
			errs = append(errs, s.Update(sym))
		} else {
			errs = append(errs, s.Add(sym))
		}
	}
	return errors.Join(errs...)
}

// UpdateAll refreshes every tracked symbol.
func (s *Store) UpdateAll() error {
	catalog, err := s.Catalog()
	if err != nil {
		return err
	}
	symbols := make([]string, len(catalog))
	for i, e := range catalog {
		symbols[i] = e.Symbol
	}
	return s.Update(symbols...)
}

func (s *Store) lastDate(symbol string) (time.Time, error) {
	var last int64
	err := s.db.QueryRow(`SELECT last_date FROM symbols WHERE symbol = ?`, symbol).Scan(&last)
	if err != nil {
		return time.Time{}, ErrSymbolNotFound
	}
	return time.Unix(last, 0).UTC(), nil
}

// refresh fetches bars since the given date and upserts them. A zero
// since fetches the whole history.
func (s *Store) refresh(symbol string, since time.Time) error {
	bars, err := s.collector.History(symbol, since)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO bars
		(symbol, date, open, high, low, close, volume, dividends)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT (symbol, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume, dividends=excluded.dividends`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var last model.Bar
	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume, b.Dividends); err != nil {
			return fmt.Errorf("insert bar %s %s: %w", symbol, b.Date.Format("2006-01-02"), err)
		}
		last = b
	}

	if _, err := tx.Exec(`INSERT INTO symbols (symbol, last_date, updated_at)
		VALUES (?,?,?)
		ON CONFLICT (symbol) DO UPDATE SET
			last_date=excluded.last_date, updated_at=excluded.updated_at`,
		symbol, last.Date.Unix(), time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert symbol %s: %w", symbol, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Printf("[INFO] %s: stored %d bars through %s",
		symbol, len(bars), last.Date.Format("2006-01-02"))
	return nil
}
