// Package portfolio folds per-symbol transaction ledgers into running
// holdings, realized proceeds, and per-symbol valuation summaries.
package portfolio

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"StockDesk/internal/model"
)

var (
	// ErrNoBuyTrades is returned when a symbol's ledger contains no buys, so
	// the average bought price is undefined.
	ErrNoBuyTrades = errors.New("no buy transactions")
	// ErrNothingInvested is returned when the remaining invested capital is
	// zero, so the percent gain is undefined.
	ErrNothingInvested = errors.New("no remaining invested capital")
)

// PriceLookup supplies the current price for a symbol. The store's latest
// cached close implements it.
type PriceLookup interface {
	CurrentPrice(symbol string) (float64, error)
}

// Valuation holds the fully processed ledger: enriched trade rows and one
// summary per symbol. It is computed once by Aggregate and read-only
// thereafter.
type Valuation struct {
	symbols   []string
	trades    map[string][]model.TradeRow
	summaries map[string]model.SymbolSummary
}

// Aggregate processes every symbol's ledger in chronological order and
// derives the valuation. The current price is fetched once per symbol and
// applied to every row's unrealized value, so the per-row Unrealized column is
// a running approximation at aggregation time, not a historical valuation.
func Aggregate(ledger map[string][]model.Trade, prices PriceLookup) (*Valuation, error) {
	symbols := make([]string, 0, len(ledger))
	for sym := range ledger {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	v := &Valuation{
		symbols:   symbols,
		trades:    make(map[string][]model.TradeRow, len(ledger)),
		summaries: make(map[string]model.SymbolSummary, len(ledger)),
	}
	for _, sym := range symbols {
		current, err := prices.CurrentPrice(sym)
		if err != nil {
			return nil, fmt.Errorf("current price for %s: %w", sym, err)
		}
		rows, summary, err := aggregateSymbol(sym, ledger[sym], current)
		if err != nil {
			return nil, err
		}
		v.trades[sym] = rows
		v.summaries[sym] = summary
	}
	return v, nil
}

// Symbols returns the ledger's symbols in sorted order.
func (v *Valuation) Symbols() []string {
	return append([]string(nil), v.symbols...)
}

// Trades returns the enriched trade rows for one symbol.
func (v *Valuation) Trades(symbol string) ([]model.TradeRow, error) {
	rows, ok := v.trades[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, model.ErrSymbolNotFound)
	}
	return append([]model.TradeRow(nil), rows...), nil
}

// Summary returns the valuation summary for one symbol.
func (v *Valuation) Summary(symbol string) (model.SymbolSummary, error) {
	s, ok := v.summaries[symbol]
	if !ok {
		return model.SymbolSummary{}, fmt.Errorf("%s: %w", symbol, model.ErrSymbolNotFound)
	}
	return s, nil
}

// Summaries returns all per-symbol summaries in symbol order.
func (v *Valuation) Summaries() []model.SymbolSummary {
	out := make([]model.SymbolSummary, 0, len(v.symbols))
	for _, sym := range v.symbols {
		out = append(out, v.summaries[sym])
	}
	return out
}

func aggregateSymbol(symbol string, trades []model.Trade, currentPrice float64) ([]model.TradeRow, model.SymbolSummary, error) {
	ordered := append([]model.Trade(nil), trades...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	rows := make([]model.TradeRow, len(ordered))
	var holding, totalBought, totalPaid, totalSold, soldValue float64
	for i, tr := range ordered {
		holding += tr.Quantity
		action := model.ActionSell
		if tr.Quantity > 0 {
			action = model.ActionBuy
			totalBought += tr.Quantity
			totalPaid += tr.Quantity * tr.Price
		} else {
			totalSold += tr.Quantity
			soldValue += tr.Quantity * tr.Price
		}
		rows[i] = model.TradeRow{
			Symbol:     symbol,
			Action:     action,
			Date:       tr.Date,
			Quantity:   tr.Quantity,
			Price:      tr.Price,
			Holding:    holding,
			Realized:   math.Max(0, -tr.Quantity*tr.Price),
			Unrealized: math.Max(0, holding*currentPrice),
		}
	}

	if totalBought == 0 {
		return nil, model.SymbolSummary{}, fmt.Errorf("symbol %s: %w", symbol, ErrNoBuyTrades)
	}
	averagePaid := totalPaid / totalBought
	remainingHolding := totalBought + totalSold
	remainingInvested := remainingHolding * averagePaid
	if remainingInvested == 0 {
		return nil, model.SymbolSummary{}, fmt.Errorf("symbol %s: %w", symbol, ErrNothingInvested)
	}
	remainingUnrealized := remainingHolding * currentPrice
	gain := remainingUnrealized - remainingInvested

	summary := model.SymbolSummary{
		Symbol:             symbol,
		AverageBoughtPrice: averagePaid,
		CurrentPrice:       currentPrice,
		TotalBought:        totalBought,
		TotalSold:          totalSold,
		CurrentHolding:     remainingHolding,
		TotalInvested:      totalPaid,
		CurrentInvested:    remainingInvested,
		RealizedAmount:     -soldValue,
		UnrealizedAmount:   remainingUnrealized,
		UnrealizedGain:     gain,
		PercentUnrealized:  gain / remainingInvested,
	}
	return rows, summary, nil
}
