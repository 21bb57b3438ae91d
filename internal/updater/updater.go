package updater

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockDesk/internal/calculator"
	"StockDesk/internal/store"
)

// Updater refreshes stored price history on a schedule and reports
// MACD crossings found in the fresh data.
type Updater struct {
	Cron  *cron.Cron
	Store *store.Store
}

// New creates an Updater around the given store.
func New(st *store.Store) *Updater {
	return &Updater{
		Cron:  cron.New(cron.WithSeconds()),
		Store: st,
	}
}

// Register schedules the refresh task with the given cron spec.
func (u *Updater) Register(spec string) error {
	if _, err := u.Cron.AddFunc(spec, u.refreshTask); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (u *Updater) Start() {
	u.Cron.Start()
	log.Println("[INFO] updater started")
}

// Stop stops the cron scheduler gracefully.
func (u *Updater) Stop() {
	u.Cron.Stop()
	log.Println("[INFO] updater stopped")
}

// RunNow executes the refresh task immediately (for manual trigger).
func (u *Updater) RunNow() {
	u.refreshTask()
}

func (u *Updater) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	if err := u.Store.UpdateAll(); err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
	}
	u.reportCrossings()
}

// reportCrossings recomputes MACD for every tracked symbol and logs
// any crossing on the latest bar.
func (u *Updater) reportCrossings() {
	catalog, err := u.Store.Catalog()
	if err != nil {
		log.Printf("[ERROR] read catalog: %v", err)
		return
	}
	for _, entry := range catalog {
		series, err := u.Store.Load(entry.Symbol)
		if err != nil {
			log.Printf("[WARN] load %s: %v", entry.Symbol, err)
			continue
		}
		series, err = calculator.MACD(series, "Close")
		if err != nil {
			log.Printf("[WARN] macd %s: %v", entry.Symbol, err)
			continue
		}
		crossing, err := calculator.MACDCrossingAt(series, series.Len()-1)
		if err != nil {
			log.Printf("[WARN] crossing %s: %v", entry.Symbol, err)
			continue
		}
		switch crossing {
		case calculator.CrossingBullish:
			log.Printf("[INFO] %s: bullish MACD crossing on %s",
				entry.Symbol, entry.LastDate.Format("2006-01-02"))
		case calculator.CrossingBearish:
			log.Printf("[INFO] %s: bearish MACD crossing on %s",
				entry.Symbol, entry.LastDate.Format("2006-01-02"))
		}
	}
}
