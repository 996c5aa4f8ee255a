// Package config resolves the tracker configuration from flags, an optional
// YAML file and the environment.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vaultchain/tracker/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultQuoteCurrency is the fiat currency prices are expressed in.
	DefaultQuoteCurrency = "usd"
	// DefaultWatchInterval is used when watch mode is requested without
	// an explicit interval.
	DefaultWatchInterval = 5 * time.Minute
	// EnvAPIKey is the environment variable holding the equities API key.
	EnvAPIKey = "ALPHA_VANTAGE_API_KEY"
)

// Config is the fully resolved run configuration.
type Config struct {
	// Holdings to value; empty means interactive mode.
	Holdings []domain.Holding
	// QuoteCurrency fiat currency for the crypto aggregator.
	QuoteCurrency string
	// AlphaVantageKey equities API key; empty disables stock pricing.
	AlphaVantageKey string
	// WatchInterval re-run period; zero disables watch mode.
	WatchInterval time.Duration
	// ExportDir directory for exported CSV files.
	ExportDir string
	// Examples print example inputs and exit.
	Examples bool
	// Interactive no holdings were supplied, fall back to the prompt loop.
	Interactive bool
}

type fileConfig struct {
	QuoteCurrency   string            `yaml:"quote_currency,omitempty"`
	ExportDir       string            `yaml:"export_dir,omitempty"`
	WatchInterval   time.Duration     `yaml:"watch_interval,omitempty"`
	AlphaVantageKey string            `yaml:"alphavantage_key,omitempty"`
	Holdings        map[string]string `yaml:"holdings,omitempty"`
}

// Get parses flags and assembles the configuration.
// Precedence per field: flag, then environment, then yaml file.
func Get() (Config, error) {
	holdings := flag.String("holdings", "", "holdings as a JSON object, e.g. "+ExampleLiteral)
	holdingsFile := flag.String("holdings-file", "", "path to a file containing holdings as JSON")
	preset := flag.String("preset", "", "predefined sample holdings: stocks | crypto | mix | intl | etf")
	examples := flag.Bool("examples", false, "print example inputs and exit")
	watch := flag.Duration("watch", 0, "re-run the valuation at this interval, e.g. 5m (0 disables)")
	exportDir := flag.String("export-dir", ".", "directory for exported CSV files")
	apiKey := flag.String("alphavantage-key", "", "Alpha Vantage API key; falls back to the "+EnvAPIKey+" env variable")
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	cfg := Config{
		QuoteCurrency:   DefaultQuoteCurrency,
		ExportDir:       *exportDir,
		WatchInterval:   *watch,
		Examples:        *examples,
		AlphaVantageKey: *apiKey,
	}
	if cfg.AlphaVantageKey == "" {
		cfg.AlphaVantageKey = os.Getenv(EnvAPIKey)
	}

	var fromFile []domain.Holding
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", *configPath)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %s", *configPath)
		}
		if fc.QuoteCurrency != "" {
			cfg.QuoteCurrency = fc.QuoteCurrency
		}
		if fc.ExportDir != "" && *exportDir == "." {
			cfg.ExportDir = fc.ExportDir
		}
		if fc.WatchInterval > 0 && *watch == 0 {
			cfg.WatchInterval = fc.WatchInterval
		}
		if fc.AlphaVantageKey != "" && cfg.AlphaVantageKey == "" {
			cfg.AlphaVantageKey = fc.AlphaVantageKey
		}
		if len(fc.Holdings) > 0 {
			fromFile, err = holdingsFromStrings(fc.Holdings)
			if err != nil {
				return Config{}, errors.Wrapf(err, "holdings in config %s", *configPath)
			}
		}
	}

	switch {
	case *holdings != "":
		parsed, err := ParseHoldings(*holdings)
		if err != nil {
			return Config{}, err
		}
		cfg.Holdings = parsed
	case *holdingsFile != "":
		raw, err := os.ReadFile(*holdingsFile)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read holdings file %s", *holdingsFile)
		}
		parsed, err := ParseHoldings(string(raw))
		if err != nil {
			return Config{}, err
		}
		cfg.Holdings = parsed
	case *preset != "":
		parsed, err := Preset(*preset)
		if err != nil {
			return Config{}, err
		}
		cfg.Holdings = parsed
	case len(fromFile) > 0:
		cfg.Holdings = fromFile
	default:
		cfg.Interactive = !cfg.Examples
	}

	return cfg, nil
}
