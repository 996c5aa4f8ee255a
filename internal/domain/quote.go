package domain

import "github.com/shopspring/decimal"

// Source identifies the provider a price came from.
type Source int

const (
	// SourceCoinGecko real-time crypto aggregator price.
	SourceCoinGecko Source = iota
	// SourceAlphaVantage real-time equity quote.
	SourceAlphaVantage
	// SourceAlphaVantageDaily most recent daily close from the time series.
	SourceAlphaVantageDaily
	// SourceYahoo secondary real-time or daily-close equity price.
	SourceYahoo
)

// String returns the provider name.
func (s Source) String() string {
	switch s {
	case SourceAlphaVantage:
		return "alphavantage"
	case SourceAlphaVantageDaily:
		return "alphavantage-daily"
	case SourceYahoo:
		return "yahoo"
	default:
		return "coingecko"
	}
}

// PriceQuote is a single fetched price.
type PriceQuote struct {
	// Price unit price in the quote currency, never negative.
	Price decimal.Decimal
	// Source provider that produced the price.
	Source Source
	// AsOf ISO date of the close for non-real-time fallbacks, empty otherwise.
	AsOf string
}
