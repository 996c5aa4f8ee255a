package pricer

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/vaultchain/tracker/internal/clients"
	"github.com/vaultchain/tracker/internal/domain"
)

const alphaVantageQueryURL = "https://www.alphavantage.co/query"

// regionBySuffix maps exchange suffixes to Alpha Vantage region names,
// used to rank symbol-search candidates.
var regionBySuffix = map[string]string{
	".HK": "Hong Kong",
	".T":  "Japan",
	".L":  "United Kingdom",
}

// AlphaVantage is the primary equity source. It exposes the three query
// functions the fallback chain sequences: real-time quote, fuzzy symbol
// search and the daily close series.
type AlphaVantage struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAlphaVantage creates an Alpha Vantage client for the given API key.
func NewAlphaVantage(client *http.Client, apiKey string) *AlphaVantage {
	return &AlphaVantage{
		client:  client,
		baseURL: alphaVantageQueryURL,
		apiKey:  apiKey,
	}
}

func (a *AlphaVantage) query(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", a.apiKey)
	return clients.GetJSON(ctx, a.client, a.baseURL+"?"+params.Encode())
}

// notice extracts a rate-limit or informational message from a payload.
func notice(body []byte) string {
	if n := gjson.GetBytes(body, "Note"); n.Exists() {
		return n.String()
	}
	if n := gjson.GetBytes(body, "Information"); n.Exists() {
		return n.String()
	}
	return ""
}

// GlobalQuote fetches the real-time quote for an exact symbol.
// It distinguishes a genuine price, a provider notice and a missing symbol.
func (a *AlphaVantage) GlobalQuote(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	body, err := a.query(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {strings.ToUpper(symbol)},
	})
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "alphavantage quote for %s", symbol)
	}

	if msg := notice(body); msg != "" {
		return domain.PriceQuote{}, &ProviderNoticeError{Symbol: symbol, Message: msg}
	}

	raw := gjson.GetBytes(body, `Global Quote.05\. price`)
	if !raw.Exists() {
		raw = gjson.GetBytes(body, `Global Quote.05\. Price`)
	}
	if !raw.Exists() || raw.String() == "" {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "alphavantage has no quote for %s", symbol)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "alphavantage returned unparsable price %q for %s", raw.String(), symbol)
	}

	return domain.PriceQuote{Price: price, Source: domain.SourceAlphaVantage}, nil
}

// SearchSymbol runs a fuzzy symbol search and returns at most one candidate.
// A candidate matching the region implied by the keyword suffix wins,
// otherwise the first match is used. Empty result means no suggestion.
func (a *AlphaVantage) SearchSymbol(ctx context.Context, keywords string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	body, err := a.query(ctx, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	})
	if err != nil {
		return "", errors.Wrapf(err, "alphavantage search for %s", keywords)
	}

	matches := gjson.GetBytes(body, "bestMatches")
	if !matches.IsArray() || len(matches.Array()) == 0 {
		return "", nil
	}

	var regionHint string
	upper := strings.ToUpper(keywords)
	for suffix, region := range regionBySuffix {
		if strings.HasSuffix(upper, suffix) {
			regionHint = region
			break
		}
	}

	if regionHint != "" {
		for _, m := range matches.Array() {
			if strings.TrimSpace(m.Get(`4\. region`).String()) != regionHint {
				continue
			}
			if sym := m.Get(`1\. symbol`).String(); sym != "" {
				return strings.ToUpper(strings.TrimSpace(sym)), nil
			}
		}
	}

	sym := matches.Array()[0].Get(`1\. symbol`).String()
	if sym == "" {
		return "", nil
	}
	return strings.ToUpper(strings.TrimSpace(sym)), nil
}

// DailyClose fetches the most recent close from the daily time series,
// trying the unadjusted series first and the adjusted one as backup.
func (a *AlphaVantage) DailyClose(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	if quote, err := a.dailySeries(ctx, "TIME_SERIES_DAILY", symbol); err == nil {
		return quote, nil
	}
	return a.dailySeries(ctx, "TIME_SERIES_DAILY_ADJUSTED", symbol)
}

func (a *AlphaVantage) dailySeries(ctx context.Context, function, symbol string) (domain.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, seriesTimeout)
	defer cancel()

	body, err := a.query(ctx, url.Values{
		"function":   {function},
		"symbol":     {symbol},
		"outputsize": {"compact"},
	})
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "alphavantage %s for %s", function, symbol)
	}

	series := gjson.GetBytes(body, `Time Series (Daily)`)
	if !series.IsObject() {
		// some responses key the series with a trailing space
		series = gjson.GetBytes(body, `Time Series (Daily) `)
	}
	if !series.IsObject() {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "alphavantage has no daily series for %s", symbol)
	}

	// ISO dates sort lexicographically, so the greatest key is the latest day.
	var latestDate string
	var latestBar gjson.Result
	series.ForEach(func(key, value gjson.Result) bool {
		if key.String() > latestDate {
			latestDate = key.String()
			latestBar = value
		}
		return true
	})
	if latestDate == "" {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "alphavantage daily series for %s is empty", symbol)
	}

	raw := latestBar.Get(`4\. close`)
	if !raw.Exists() || raw.String() == "" {
		raw = latestBar.Get(`5\. adjusted close`)
	}
	if !raw.Exists() || raw.String() == "" {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "alphavantage daily bar for %s has no close", symbol)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "alphavantage returned unparsable close %q for %s", raw.String(), symbol)
	}

	return domain.PriceQuote{
		Price:  price,
		Source: domain.SourceAlphaVantageDaily,
		AsOf:   latestDate,
	}, nil
}
