package config

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vaultchain/tracker/internal/domain"
)

// ExampleLiteral is the canonical holdings example shown in usage hints.
const ExampleLiteral = `{"BTC": 0.01, "ETH": 0.2, "SOL": 3}`

// presets are the predefined sample holdings selectable with --preset.
var presets = map[string]map[string]string{
	"stocks": {"AAPL": "1", "MSFT": "1", "NVDA": "1"},
	"crypto": {"BTC": "0.01", "ETH": "0.2", "SOL": "3"},
	"mix":    {"BTC": "0.005", "AAPL": "1", "ETH": "0.1"},
	"intl":   {"700.HK": "2", "7203.T": "1", "RIO.L": "3"},
	"etf":    {"SPY": "1", "QQQ": "1", "VTI": "1"},
}

// ParseHoldings decodes a holdings object. Strict JSON is the contract;
// single-quoted literals are accepted as a convenience by rewriting the
// quotes before decoding. Holdings are returned sorted by asset token so
// valuation order is deterministic.
func ParseHoldings(raw string) ([]domain.Holding, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	amounts, err := decodeHoldings(raw)
	if err != nil && strings.Contains(raw, "'") {
		amounts, err = decodeHoldings(strings.ReplaceAll(raw, "'", `"`))
	}
	if err != nil {
		return nil, errors.Errorf("invalid holdings format, example: %s", ExampleLiteral)
	}

	holdings := make([]domain.Holding, 0, len(amounts))
	for asset, amount := range amounts {
		quantity, err := decimal.NewFromString(amount.String())
		if err != nil {
			return nil, errors.Errorf("invalid quantity %q for %s, example: %s", amount.String(), asset, ExampleLiteral)
		}
		holdings = append(holdings, domain.Holding{Asset: asset, Quantity: quantity})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Asset < holdings[j].Asset })
	return holdings, nil
}

func decodeHoldings(raw string) (map[string]json.Number, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var amounts map[string]json.Number
	if err := dec.Decode(&amounts); err != nil {
		return nil, err
	}
	return amounts, nil
}

// Preset returns the predefined holdings for a preset name.
func Preset(name string) ([]domain.Holding, error) {
	amounts, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, errors.Errorf("unknown preset %q, available: %s", name, strings.Join(names, " | "))
	}
	return holdingsFromStrings(amounts)
}

func holdingsFromStrings(amounts map[string]string) ([]domain.Holding, error) {
	holdings := make([]domain.Holding, 0, len(amounts))
	for asset, amount := range amounts {
		quantity, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid quantity %q for %s", amount, asset)
		}
		holdings = append(holdings, domain.Holding{Asset: asset, Quantity: quantity})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Asset < holdings[j].Asset })
	return holdings, nil
}
