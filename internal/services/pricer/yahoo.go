package pricer

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/vaultchain/tracker/internal/clients"
	"github.com/vaultchain/tracker/internal/domain"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Yahoo is the secondary equity source. It prefers the last traded price
// and falls back to the most recent daily close from the chart bars.
type Yahoo struct {
	client  *http.Client
	baseURL string
}

// NewYahoo creates a Yahoo chart-API pricer.
func NewYahoo(client *http.Client) *Yahoo {
	return &Yahoo{client: client, baseURL: yahooChartURL}
}

// GetPrice returns the last traded price or latest daily close for a symbol.
func (y *Yahoo) GetPrice(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, seriesTimeout)
	defer cancel()

	addr := y.baseURL + "/" + url.PathEscape(symbol) + "?interval=1d&range=5d"
	body, err := clients.GetJSON(ctx, y.client, addr)
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "yahoo chart for %s", symbol)
	}

	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() && desc.String() != "" {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "yahoo: %s", desc.String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "yahoo has no chart data for %s", symbol)
	}

	if last := result.Get("meta.regularMarketPrice"); last.Exists() && last.Float() > 0 {
		return domain.PriceQuote{
			Price:  decimal.NewFromFloat(last.Float()),
			Source: domain.SourceYahoo,
		}, nil
	}

	// no live price, take the latest non-null close from the bars
	closes := result.Get("indicators.quote.0.close").Array()
	stamps := result.Get("timestamp").Array()
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i].Type != gjson.Number {
			continue
		}
		quote := domain.PriceQuote{
			Price:  decimal.NewFromFloat(closes[i].Float()),
			Source: domain.SourceYahoo,
		}
		if i < len(stamps) {
			quote.AsOf = time.Unix(stamps[i].Int(), 0).UTC().Format("2006-01-02")
		}
		return quote, nil
	}

	return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "yahoo has no usable close for %s", symbol)
}
