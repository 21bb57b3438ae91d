package model

import (
	"errors"
	"time"
)

// ErrSymbolNotFound is returned when a requested symbol is absent from loaded
// data or a ledger.
var ErrSymbolNotFound = errors.New("symbol not found")

// Action indicates the direction of a trade.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
)

// Trade is a single ledger entry for one symbol. Quantity is signed: positive
// for a buy, negative for a sell.
type Trade struct {
	Date     time.Time
	Quantity float64
	Price    float64
}

// TradeRow is a ledger entry enriched with running totals.
//
// Unrealized is computed against a single current price fetched once per
// symbol, not the price at the row's own date, so it is a running
// approximation rather than a point-in-time valuation.
type TradeRow struct {
	Symbol     string
	Action     Action
	Date       time.Time
	Quantity   float64
	Price      float64
	Holding    float64 // cumulative signed quantity up to and including this row
	Realized   float64 // sale proceeds for this row, 0 on buys
	Unrealized float64 // max(0, Holding * current price)
}

// SymbolSummary is the one-row valuation of a symbol's fully processed ledger.
type SymbolSummary struct {
	Symbol              string
	AverageBoughtPrice  float64
	CurrentPrice        float64
	TotalBought         float64
	TotalSold           float64 // negative or zero
	CurrentHolding      float64
	TotalInvested       float64
	CurrentInvested     float64
	RealizedAmount      float64
	UnrealizedAmount    float64
	UnrealizedGain      float64
	PercentUnrealized   float64 // gain / current invested
}
