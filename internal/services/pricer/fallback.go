package pricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vaultchain/tracker/internal/domain"
	"go.uber.org/zap"
)

// EquitySource is the primary provider with its three query functions.
type EquitySource interface {
	GlobalQuote(ctx context.Context, symbol string) (domain.PriceQuote, error)
	SearchSymbol(ctx context.Context, keywords string) (string, error)
	DailyClose(ctx context.Context, symbol string) (domain.PriceQuote, error)
}

// StockChain sequences the equity sources in strict priority order:
// real-time quote, quote on a searched symbol, daily close, secondary
// provider. A provider notice on either real-time quote aborts the whole
// chain for the asset this cycle so rate-limit violations are not amplified.
type StockChain struct {
	primary   EquitySource
	secondary StockPricer
	l         *zap.Logger
}

// NewStockChain creates the equity fallback chain.
// secondary may be nil when no alternate provider is configured.
func NewStockChain(l *zap.Logger, primary EquitySource, secondary StockPricer) *StockChain {
	return &StockChain{primary: primary, secondary: secondary, l: l}
}

// GetPrice resolves a price for a normalized symbol, stopping at the first
// source that succeeds.
func (c *StockChain) GetPrice(ctx context.Context, symbol string) (domain.PriceQuote, error) {
	quote, err := c.primary.GlobalQuote(ctx, symbol)
	if err == nil {
		return quote, nil
	}
	if IsNotice(err) {
		return domain.PriceQuote{}, err
	}

	suggested, serr := c.primary.SearchSymbol(ctx, symbol)
	if serr != nil {
		c.l.Debug("symbol search failed", zap.String("symbol", symbol), zap.Error(serr))
		suggested = ""
	}

	if suggested != "" && suggested != symbol {
		quote, err = c.primary.GlobalQuote(ctx, suggested)
		if err == nil {
			c.l.Info("resolved symbol via search",
				zap.String("symbol", symbol), zap.String("suggested", suggested))
			return quote, nil
		}
		if IsNotice(err) {
			return domain.PriceQuote{}, err
		}
	}

	if quote, err = c.primary.DailyClose(ctx, symbol); err == nil {
		c.l.Info("using last daily close",
			zap.String("symbol", symbol), zap.String("as_of", quote.AsOf))
		return quote, nil
	}
	if suggested != "" {
		if quote, err = c.primary.DailyClose(ctx, suggested); err == nil {
			c.l.Info("using last daily close",
				zap.String("symbol", suggested), zap.String("as_of", quote.AsOf))
			return quote, nil
		}
	}

	if c.secondary != nil {
		if quote, err = c.secondary.GetPrice(ctx, symbol); err == nil {
			c.l.Info("using secondary provider", zap.String("symbol", symbol))
			return quote, nil
		}
		if suggested != "" && suggested != symbol {
			if quote, err = c.secondary.GetPrice(ctx, suggested); err == nil {
				c.l.Info("using secondary provider", zap.String("symbol", suggested))
				return quote, nil
			}
		}
	}

	return domain.PriceQuote{}, errors.Wrapf(ErrNotFound, "no source returned a price for %s", symbol)
}
