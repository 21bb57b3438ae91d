package portfolio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockDesk/internal/model"
)

// stubPrices is a fixed current-price lookup.
type stubPrices map[string]float64

func (p stubPrices) CurrentPrice(symbol string) (float64, error) {
	v, ok := p[symbol]
	if !ok {
		return 0, errors.New("no price")
	}
	return v, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestAggregate_SummaryScenario(t *testing.T) {
	ledger := map[string][]model.Trade{
		"SYM1": {
			{Date: date(2020, time.January, 30), Quantity: 20, Price: 1.00},
			{Date: date(2020, time.February, 15), Quantity: -10, Price: 2.00},
			{Date: date(2020, time.March, 10), Quantity: 100, Price: 1.50},
		},
	}

	v, err := Aggregate(ledger, stubPrices{"SYM1": 3.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := v.Summary("SYM1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !closeTo(sum.AverageBoughtPrice, 170.0/120.0) {
		t.Errorf("average bought price: expected 1.4167, got %v", sum.AverageBoughtPrice)
	}
	if sum.CurrentHolding != 110 {
		t.Errorf("current holding: expected 110, got %v", sum.CurrentHolding)
	}
	if !closeTo(sum.CurrentInvested, 110*170.0/120.0) {
		t.Errorf("current invested: expected 155.83, got %v", sum.CurrentInvested)
	}
	if !closeTo(sum.UnrealizedAmount, 330) {
		t.Errorf("unrealized amount: expected 330, got %v", sum.UnrealizedAmount)
	}
	if !closeTo(sum.UnrealizedGain, 330-110*170.0/120.0) {
		t.Errorf("unrealized gain: expected 174.17, got %v", sum.UnrealizedGain)
	}
	if !closeTo(sum.PercentUnrealized, (330-110*170.0/120.0)/(110*170.0/120.0)) {
		t.Errorf("percent gain: expected about 1.117, got %v", sum.PercentUnrealized)
	}
	if !closeTo(sum.RealizedAmount, 20) {
		t.Errorf("realized amount: expected 20, got %v", sum.RealizedAmount)
	}
	if sum.TotalBought != 120 || sum.TotalSold != -10 {
		t.Errorf("totals: expected bought 120 sold -10, got %v %v", sum.TotalBought, sum.TotalSold)
	}
}

func TestAggregate_TradeRows(t *testing.T) {
	ledger := map[string][]model.Trade{
		"SYM1": {
			{Date: date(2020, time.January, 30), Quantity: 20, Price: 1.00},
			{Date: date(2020, time.February, 15), Quantity: -10, Price: 2.00},
			{Date: date(2020, time.March, 10), Quantity: 100, Price: 1.50},
		},
	}
	v, err := Aggregate(ledger, stubPrices{"SYM1": 3.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := v.Trades("SYM1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantHolding := []float64{20, 10, 110}
	wantRealized := []float64{0, 20, 0}
	wantUnrealized := []float64{60, 30, 330}
	wantAction := []model.Action{model.ActionBuy, model.ActionSell, model.ActionBuy}
	for i, r := range rows {
		if r.Holding != wantHolding[i] {
			t.Errorf("row %d holding: expected %v, got %v", i, wantHolding[i], r.Holding)
		}
		if r.Realized != wantRealized[i] {
			t.Errorf("row %d realized: expected %v, got %v", i, wantRealized[i], r.Realized)
		}
		if r.Unrealized != wantUnrealized[i] {
			t.Errorf("row %d unrealized: expected %v, got %v", i, wantUnrealized[i], r.Unrealized)
		}
		if r.Action != wantAction[i] {
			t.Errorf("row %d action: expected %v, got %v", i, wantAction[i], r.Action)
		}
	}
}

func TestAggregate_SortsUnorderedTrades(t *testing.T) {
	ledger := map[string][]model.Trade{
		"SYM1": {
			{Date: date(2020, time.March, 10), Quantity: 100, Price: 1.50},
			{Date: date(2020, time.January, 30), Quantity: 20, Price: 1.00},
		},
	}
	v, err := Aggregate(ledger, stubPrices{"SYM1": 2.00})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, _ := v.Trades("SYM1")
	if !rows[0].Date.Before(rows[1].Date) {
		t.Error("trade rows not in chronological order")
	}
	if rows[0].Holding != 20 || rows[1].Holding != 120 {
		t.Errorf("cumulative holding wrong after sorting: %v, %v", rows[0].Holding, rows[1].Holding)
	}
}

func TestAggregate_NoBuysFails(t *testing.T) {
	ledger := map[string][]model.Trade{
		"SYM1": {{Date: date(2020, time.January, 30), Quantity: -5, Price: 2.00}},
	}
	_, err := Aggregate(ledger, stubPrices{"SYM1": 1.00})
	if !errors.Is(err, ErrNoBuyTrades) {
		t.Errorf("expected ErrNoBuyTrades, got %v", err)
	}
}

func TestAggregate_ClosedPositionFails(t *testing.T) {
	ledger := map[string][]model.Trade{
		"SYM1": {
			{Date: date(2020, time.January, 30), Quantity: 10, Price: 1.00},
			{Date: date(2020, time.February, 15), Quantity: -10, Price: 2.00},
		},
	}
	_, err := Aggregate(ledger, stubPrices{"SYM1": 1.00})
	if !errors.Is(err, ErrNothingInvested) {
		t.Errorf("expected ErrNothingInvested, got %v", err)
	}
}

func TestValuation_UnknownSymbol(t *testing.T) {
	v, err := Aggregate(map[string][]model.Trade{}, stubPrices{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.Trades("NOPE"); !errors.Is(err, model.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
	if _, err := v.Summary("NOPE"); !errors.Is(err, model.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestLoadLedger(t *testing.T) {
	content := `
aapl:
  - {date: 2023-02-15, quantity: -10, price: 161.00}
  - {date: 2023-01-30, quantity: 20, price: 150.25}
MSFT:
  - {date: 2023-03-01, quantity: 5, price: 250.00}
`
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ledger, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aapl, ok := ledger["AAPL"]
	if !ok {
		t.Fatal("expected upper-cased AAPL key")
	}
	if len(aapl) != 2 || !aapl[0].Date.Before(aapl[1].Date) {
		t.Errorf("expected 2 AAPL trades sorted by date, got %+v", aapl)
	}
	if len(ledger["MSFT"]) != 1 {
		t.Errorf("expected 1 MSFT trade, got %d", len(ledger["MSFT"]))
	}
}

func TestLoadLedger_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := os.WriteFile(path, []byte("X:\n  - {date: 30/01/2023, quantity: 1, price: 1}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLedger(path); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
