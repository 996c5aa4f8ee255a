package pricer

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/vaultchain/tracker/internal/clients"
	"github.com/vaultchain/tracker/internal/domain"
)

const coinGeckoSimplePriceURL = "https://api.coingecko.com/api/v3/simple/price"

// CoinGecko fetches crypto prices from the CoinGecko batch-price endpoint.
type CoinGecko struct {
	client     *http.Client
	baseURL    string
	vsCurrency string
}

// NewCoinGecko creates a CoinGecko pricer quoting in vsCurrency (e.g. "usd").
func NewCoinGecko(client *http.Client, vsCurrency string) *CoinGecko {
	return &CoinGecko{
		client:     client,
		baseURL:    coinGeckoSimplePriceURL,
		vsCurrency: vsCurrency,
	}
}

// GetPrice returns the current price for a canonical coin id.
func (c *CoinGecko) GetPrice(ctx context.Context, coinID string) (domain.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	query := url.Values{
		"ids":           {coinID},
		"vs_currencies": {c.vsCurrency},
	}
	body, err := clients.GetJSON(ctx, c.client, c.baseURL+"?"+query.Encode())
	if err != nil {
		return domain.PriceQuote{}, errors.Wrapf(err, "coingecko request for %s", coinID)
	}

	price := gjson.GetBytes(body, coinID+"."+c.vsCurrency)
	if !price.Exists() {
		return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "coingecko has no %s/%s", coinID, c.vsCurrency)
	}
	if price.Type != gjson.Number {
		return domain.PriceQuote{}, errors.Errorf("coingecko returned non-numeric price for %s: %s", coinID, price.Raw)
	}

	return domain.PriceQuote{
		Price:  decimal.NewFromFloat(price.Float()),
		Source: domain.SourceCoinGecko,
	}, nil
}
