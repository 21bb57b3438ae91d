package portfolio

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockDesk/internal/model"
)

// ledgerEntry is the on-disk shape of one transaction.
type ledgerEntry struct {
	Date     string  `yaml:"date"`
	Quantity float64 `yaml:"quantity"`
	Price    float64 `yaml:"price"`
}

// LoadLedger reads a transaction ledger from a YAML file mapping symbols to
// transaction lists:
//
//	AAPL:
//	  - {date: 2023-01-30, quantity: 20, price: 150.25}
//	  - {date: 2023-02-15, quantity: -10, price: 161.00}
//
// Symbols are upper-cased and each symbol's trades are sorted by date.
func LoadLedger(path string) (map[string][]model.Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var raw map[string][]ledgerEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}

	out := make(map[string][]model.Trade, len(raw))
	for sym, entries := range raw {
		trades := make([]model.Trade, 0, len(entries))
		for _, e := range entries {
			d, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				return nil, fmt.Errorf("ledger %s: date %q: %w", sym, e.Date, err)
			}
			trades = append(trades, model.Trade{Date: d, Quantity: e.Quantity, Price: e.Price})
		}
		sort.SliceStable(trades, func(i, j int) bool { return trades[i].Date.Before(trades[j].Date) })
		out[strings.ToUpper(sym)] = trades
	}
	return out, nil
}
