// Command tracker values a portfolio of cryptocurrency and equity holdings.
// Crypto prices come from the CoinGecko aggregator; equities are priced
// through Alpha Vantage with Yahoo Finance as a secondary source.
//
// Usage:
//
//	tracker --holdings '{"BTC": 0.01, "ETH": 0.2, "SOL": 3}'
//	tracker --holdings-file holdings.json --watch 5m
//	tracker --preset mix
//	tracker (interactive prompt)
//
// Stock pricing requires an Alpha Vantage API key via --alphavantage-key,
// the ALPHA_VANTAGE_API_KEY environment variable or the interactive prompt;
// without one, only crypto assets are priced.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/vaultchain/tracker/config"
	"github.com/vaultchain/tracker/internal"
	"github.com/vaultchain/tracker/internal/clients"
	"github.com/vaultchain/tracker/internal/services/pricer"
	"github.com/vaultchain/tracker/internal/services/valuation"
	"github.com/vaultchain/tracker/internal/setup"
	"go.uber.org/zap"
)

const httpTimeout = 30 * time.Second

func main() {
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v. Use format %s\n", err, config.ExampleLiteral)
		os.Exit(1)
	}

	fmt.Println(setup.Banner())

	if cfg.Examples {
		fmt.Println(setup.Examples())
		return
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AlphaVantageKey == "" && cfg.Interactive {
		key, err := setup.PromptAPIKey()
		if err != nil {
			fmt.Println("Goodbye!")
			return
		}
		cfg.AlphaVantageKey = key
	}
	if cfg.AlphaVantageKey == "" {
		logger.Warn("no equities API key, stock pricing disabled for this run")
	}

	tracker := internal.NewTracker(logger, buildEngine(logger, cfg), cfg.ExportDir, os.Stdout)

	if cfg.Interactive {
		runInteractive(ctx, tracker)
		fmt.Println("Goodbye!")
		return
	}

	if len(cfg.Holdings) == 0 {
		fmt.Fprintln(os.Stderr, "No holdings provided.")
		os.Exit(1)
	}

	if err := tracker.RunOnce(ctx, cfg.Holdings); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("valuation failed", zap.Error(err))
		os.Exit(1)
	}
	if cfg.WatchInterval > 0 {
		if err := tracker.Watch(ctx, cfg.Holdings, cfg.WatchInterval); err != nil {
			logger.Error("watch loop failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

func buildEngine(logger *zap.Logger, cfg config.Config) *valuation.Engine {
	httpClient := clients.New(httpTimeout)
	crypto := pricer.NewCoinGecko(httpClient, cfg.QuoteCurrency)

	var stocks pricer.StockPricer
	if cfg.AlphaVantageKey != "" {
		primary := pricer.NewAlphaVantage(httpClient, cfg.AlphaVantageKey)
		secondary := pricer.NewYahoo(httpClient)
		stocks = pricer.NewStockChain(logger, primary, secondary)
	}

	return valuation.NewEngine(logger, crypto, stocks)
}

// runInteractive is the line-based fallback mode: holdings in, table out,
// until quit or interrupt.
func runInteractive(ctx context.Context, tracker *internal.Tracker) {
	for ctx.Err() == nil {
		raw, err := setup.PromptHoldings()
		if err != nil {
			return
		}

		switch strings.ToLower(raw) {
		case "":
			continue
		case "quit":
			return
		case "examples":
			fmt.Println(setup.Examples())
			continue
		}

		holdings, err := config.ParseHoldings(raw)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if len(holdings) == 0 {
			fmt.Println("No holdings provided.")
			continue
		}

		if err := tracker.RunOnce(ctx, holdings); err != nil {
			return
		}

		watch, err := setup.ConfirmWatch()
		if err != nil {
			return
		}
		if watch {
			if err := tracker.Watch(ctx, holdings, config.DefaultWatchInterval); err != nil {
				return
			}
			return
		}
	}
}
