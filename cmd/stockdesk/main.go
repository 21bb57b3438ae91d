package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"StockDesk/internal/calculator"
	"StockDesk/internal/collector"
	"StockDesk/internal/config"
	"StockDesk/internal/model"
	"StockDesk/internal/portfolio"
	"StockDesk/internal/render"
	"StockDesk/internal/store"
	"StockDesk/internal/updater"
)

var (
	cfgPath string
	cfg     *config.Config
)

func main() {
	log.SetFlags(log.LstdFlags)

	root := &cobra.Command{
		Use:   "stockdesk",
		Short: "Track stock price history, indicators, and portfolio value",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viper.AutomaticEnv()
			if v := viper.GetString("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
				cfgPath = v
			}
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to config file")

	root.AddCommand(
		newAddCmd(), newUpdateCmd(), newListCmd(),
		newShowCmd(), newReturnsCmd(), newCompareCmd(),
		newPortfolioCmd(), newDividendsCmd(), newWatchCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Database.SQLitePath, collector.NewYahooFetcher(cfg.Proxy))
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <symbol>...",
		Short: "Fetch and store the full history for new symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Add(args...)
		},
	}
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [symbol]...",
		Short: "Refresh stored history; with no arguments, refresh every tracked symbol",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if len(args) == 0 {
				return st.UpdateAll()
			}
			return st.AddOrUpdate(args...)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked symbols and their stored date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			catalog, err := st.Catalog()
			if err != nil {
				return err
			}
			render.CatalogTable(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	var (
		sma, ema string
		macd     bool
		period   string
		tail     int
	)
	cmd := &cobra.Command{
		Use:   "show <symbol>",
		Short: "Show recent history with optional indicator columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			series, err := st.Load(args[0])
			if err != nil {
				return err
			}
			if series, err = calculator.ReducePeriod(series, period); err != nil {
				return err
			}

			cols := []string{"Open", "High", "Low", "Close", "Volume"}
			if windows, err := parseWindows(sma); err != nil {
				return err
			} else if len(windows) > 0 {
				if series, err = calculator.SimpleMovingAverage(series, "Close", windows); err != nil {
					return err
				}
				for _, w := range windows {
					cols = append(cols, "SMA_"+strconv.Itoa(w))
				}
			}
			if windows, err := parseWindows(ema); err != nil {
				return err
			} else if len(windows) > 0 {
				if series, err = calculator.ExponentialMovingAverage(series, "Close", windows); err != nil {
					return err
				}
				for _, w := range windows {
					cols = append(cols, "EMA_"+strconv.Itoa(w))
				}
			}
			if macd {
				if series, err = calculator.MACD(series, "Close"); err != nil {
					return err
				}
				cols = append(cols, "MACD", "DEA", "OSC")
			}

			if tail == 0 {
				tail = cfg.Render.TailRows
			}
			return render.SeriesTable(cmd.OutOrStdout(), series, cols, tail)
		},
	}
	cmd.Flags().StringVar(&sma, "sma", "", "comma separated SMA windows, e.g. 5,20")
	cmd.Flags().StringVar(&ema, "ema", "", "comma separated EMA spans, e.g. 12,26")
	cmd.Flags().BoolVar(&macd, "macd", false, "add MACD, DEA, and OSC columns")
	cmd.Flags().StringVar(&period, "period", "max", "history window, e.g. 30d, 6m, 1y, max")
	cmd.Flags().IntVar(&tail, "tail", 0, "number of rows to show (0 uses config default)")
	return cmd
}

func newReturnsCmd() *cobra.Command {
	var group, period string
	cmd := &cobra.Command{
		Use:   "returns <symbol>",
		Short: "Show grouped returns and their per-period averages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			series, err := st.Load(args[0])
			if err != nil {
				return err
			}
			if series, err = calculator.ReducePeriod(series, period); err != nil {
				return err
			}
			series, err = calculator.AverageReturnsSummary(series, "DailyReturns", group)
			if err != nil {
				return err
			}

			col := groupedColumn(group)
			avgCol := averagedColumn("DailyReturns", group)
			vals, err := series.Column(col)
			if err != nil {
				return err
			}
			series = series.FilterRows(func(row int) bool {
				return !model.IsMissing(vals[row])
			})
			return render.SeriesTable(cmd.OutOrStdout(), series, []string{col, avgCol}, 0)
		},
	}
	cmd.Flags().StringVar(&group, "group", "monthly", "grouping: monthly, quarterly, or annually")
	cmd.Flags().StringVar(&period, "period", "max", "history window, e.g. 2y, max")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var group, period string
	cmd := &cobra.Command{
		Use:   "compare <symbol>...",
		Short: "Compare grouped returns across symbols",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			col := groupedColumn(group)
			all := make([]*model.Series, 0, len(args))
			for _, sym := range args {
				s, err := st.Load(sym)
				if err != nil {
					return err
				}
				if s, err = calculator.ReducePeriod(s, period); err != nil {
					return err
				}
				all = append(all, s)
			}
			return render.CompareTable(cmd.OutOrStdout(), all, col)
		},
	}
	cmd.Flags().StringVar(&group, "group", "monthly", "grouping: monthly, quarterly, or annually")
	cmd.Flags().StringVar(&period, "period", "max", "history window, e.g. 2y, max")
	return cmd
}

func newPortfolioCmd() *cobra.Command {
	var trades bool
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Value the trade ledger against current prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ledger, err := portfolio.LoadLedger(cfg.Portfolio.LedgerFile)
			if err != nil {
				return err
			}
			valuation, err := portfolio.Aggregate(ledger, st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if trades {
				for _, sym := range valuation.Symbols() {
					rows, err := valuation.Trades(sym)
					if err != nil {
						return err
					}
					render.TradesTable(out, sym, rows)
					fmt.Fprintln(out)
				}
			}
			render.SummaryTable(out, valuation.Summaries())
			return nil
		},
	}
	cmd.Flags().BoolVar(&trades, "trades", false, "also print per-symbol trade history")
	return cmd
}

func newDividendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dividends <symbol>...",
		Short: "Summarize dividend yields per symbol",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			summaries := make([]calculator.DividendSummary, 0, len(args))
			for _, sym := range args {
				series, err := st.Load(sym)
				if err != nil {
					return err
				}
				summary, err := calculator.SummarizeDividends(series, sym, "FracDividends", time.Now())
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
			}
			render.DividendTable(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the scheduled updater until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			up := updater.New(st)
			if err := up.Register(cfg.Schedule.UpdateCron); err != nil {
				return err
			}
			up.Start()
			defer up.Stop()

			if viper.GetBool("RUN_ON_START") {
				log.Println("[INFO] RUN_ON_START enabled, refreshing now")
				go up.RunNow()
			}

			log.Println("[INFO] stockdesk watching. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
}

func parseWindows(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	windows := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad window %q: %w", p, err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func groupedColumn(group string) string {
	switch strings.ToLower(group) {
	case "quarterly":
		return "QuarterlyReturns"
	case "annually", "annual":
		return "AnnualReturns"
	default:
		return "MonthlyReturns"
	}
}

func averagedColumn(baseField, group string) string {
	switch strings.ToLower(group) {
	case "quarterly":
		return baseField + "-averaged-Quarterly"
	case "annually", "annual":
		return baseField + "-averaged-Annually"
	default:
		return baseField + "-averaged-Monthly"
	}
}
