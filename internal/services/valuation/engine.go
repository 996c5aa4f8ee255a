// Package valuation combines holdings with fetched prices into a portfolio
// result with a computed total.
package valuation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vaultchain/tracker/internal/domain"
	"github.com/vaultchain/tracker/internal/services/pricer"
	"go.uber.org/zap"
)

const (
	pricePrecision = 6
	valuePrecision = 2
)

// Engine values holdings one at a time: classify, resolve, fetch, multiply.
// A failed asset is logged and skipped, it never aborts the run.
type Engine struct {
	l      *zap.Logger
	crypto pricer.CryptoPricer
	// stocks is nil when no equity API key is configured; the whole stock
	// branch is then skipped for the run.
	stocks pricer.StockPricer
}

// NewEngine creates a valuation engine. stocks may be nil.
func NewEngine(l *zap.Logger, crypto pricer.CryptoPricer, stocks pricer.StockPricer) *Engine {
	return &Engine{l: l, crypto: crypto, stocks: stocks}
}

// Calculate values every holding sequentially and returns the result.
// Each value cell is rounded to 2 digits before summation, so the total
// always equals the sum of the rendered value cells.
func (e *Engine) Calculate(ctx context.Context, holdings []domain.Holding) domain.PortfolioResult {
	var result domain.PortfolioResult
	result.Total = decimal.Zero

	for _, h := range holdings {
		if !h.Quantity.IsPositive() {
			e.l.Warn("invalid quantity, skipping",
				zap.String("asset", h.Asset), zap.String("quantity", h.Quantity.String()))
			continue
		}

		quote, err := e.price(ctx, h.Asset)
		if err != nil {
			e.l.Warn("asset not priced", zap.String("asset", h.Asset), zap.Error(err))
			continue
		}

		row := domain.ValuationRow{
			Asset:    h.Asset,
			Quantity: h.Quantity,
			Price:    quote.Price.Round(pricePrecision),
			Value:    quote.Price.Mul(h.Quantity).Round(valuePrecision),
			Source:   quote.Source,
			AsOf:     quote.AsOf,
		}
		result.Rows = append(result.Rows, row)
		result.Total = result.Total.Add(row.Value)
	}

	return result
}

func (e *Engine) price(ctx context.Context, asset string) (domain.PriceQuote, error) {
	switch domain.Classify(asset) {
	case domain.ClassStock:
		if e.stocks == nil {
			return domain.PriceQuote{}, errors.New("equity pricing disabled: missing API key")
		}
		symbol, err := domain.NormalizeStockSymbol(asset)
		if err != nil {
			return domain.PriceQuote{}, err
		}
		return e.stocks.GetPrice(ctx, symbol)
	default:
		coinID, err := domain.ResolveCrypto(asset)
		if err != nil {
			return domain.PriceQuote{}, err
		}
		return e.crypto.GetPrice(ctx, coinID)
	}
}
