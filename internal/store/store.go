package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockDesk/internal/collector"
	"StockDesk/internal/model"
)

// ErrSymbolNotFound reports a symbol with no stored history.
var ErrSymbolNotFound = model.ErrSymbolNotFound

// CatalogEntry describes one tracked symbol.
type CatalogEntry struct {
	Symbol    string
	FirstDate time.Time
	LastDate  time.Time
	Bars      int
}

// Store persists daily price history to a SQLite database and keeps it
// fresh through a Fetcher.
type Store struct {
	db        *sql.DB
	collector *collector.Collector
	mu        sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string, fetcher collector.Fetcher) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, collector: collector.NewCollector(fetcher)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bars (
			symbol    TEXT NOT NULL,
			date      INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			volume    REAL,
			dividends REAL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol ON bars(symbol)`,

		`CREATE TABLE IF NOT EXISTS symbols (
			symbol     TEXT PRIMARY KEY,
			last_date  INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Has reports whether symbol already has stored history.
func (s *Store) Has(symbol string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM symbols WHERE symbol = ?`,
		normalize(symbol)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query symbol %s: %w", symbol, err)
	}
	return n > 0, nil
}

func (s *Store) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
