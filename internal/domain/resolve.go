package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidAsset marks a token that resolves to an empty identifier.
var ErrInvalidAsset = errors.New("invalid asset")

// symbolToCoinID maps common crypto symbols to canonical CoinGecko ids.
var symbolToCoinID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"DOGE":  "dogecoin",
	"BNB":   "binancecoin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"MATIC": "polygon-pos",
	"TRX":   "tron",
	"LTC":   "litecoin",
	"DOT":   "polkadot",
}

// coinIDs is the reverse set of known canonical coin ids.
var coinIDs = func() map[string]bool {
	ids := make(map[string]bool, len(symbolToCoinID))
	for _, id := range symbolToCoinID {
		ids[id] = true
	}
	return ids
}()

// ResolveCrypto maps a crypto token to a canonical provider id.
// Unmapped tokens pass through lowercased, so raw ids like "bitcoin"
// or "solana" are accepted as-is.
func ResolveCrypto(asset string) (string, error) {
	token := strings.TrimSpace(asset)
	if token == "" {
		return "", errors.Wrap(ErrInvalidAsset, "empty crypto token")
	}
	if id, ok := symbolToCoinID[strings.ToUpper(token)]; ok {
		return id, nil
	}
	return strings.ToLower(token), nil
}

// NormalizeStockSymbol uppercases a ticker and left-pads numeric Hong Kong
// tickers to four digits, e.g. 700.HK becomes 0700.HK. Other exchange
// suffixes pass through unchanged.
func NormalizeStockSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", errors.Wrap(ErrInvalidAsset, "empty stock symbol")
	}
	if base, ok := strings.CutSuffix(s, ".HK"); ok && isDigits(base) && len(base) < 4 {
		s = strings.Repeat("0", 4-len(base)) + base + ".HK"
	}
	return s, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
