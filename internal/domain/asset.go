// Package domain defines core data structures used throughout the tracker.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AssetClass tells which kind of market an asset trades on.
type AssetClass int

const (
	// ClassCrypto is a cryptocurrency priced by the crypto aggregator.
	ClassCrypto AssetClass = iota
	// ClassStock is an equity ticker priced by the equity providers.
	ClassStock
)

// String returns a human-readable class name.
func (c AssetClass) String() string {
	if c == ClassStock {
		return "stock"
	}
	return "crypto"
}

// Holding is a single portfolio position as entered by the user.
type Holding struct {
	// Asset raw user token, e.g. "BTC", "bitcoin", "700.HK".
	Asset string
	// Quantity amount of the asset held.
	Quantity decimal.Decimal
}

// Classify decides whether a user token denotes a crypto asset or an
// equity ticker. Rules apply in priority order:
//
//  1. empty token defaults to crypto
//  2. known crypto symbol (BTC, ETH, ...)
//  3. a dot or digit marks international or numeric tickers as stocks
//  4. known canonical coin id (bitcoin, ethereum, ...)
//  5. unmapped all-uppercase alphabetic tokens look like US tickers
//  6. anything else passes through as a raw coin id
func Classify(asset string) AssetClass {
	token := strings.TrimSpace(asset)
	if token == "" {
		return ClassCrypto
	}

	if _, ok := symbolToCoinID[strings.ToUpper(token)]; ok {
		return ClassCrypto
	}

	if strings.ContainsAny(token, ".0123456789") {
		return ClassStock
	}

	if coinIDs[strings.ToLower(token)] {
		return ClassCrypto
	}

	if isUpperAlpha(token) {
		return ClassStock
	}

	return ClassCrypto
}

func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
