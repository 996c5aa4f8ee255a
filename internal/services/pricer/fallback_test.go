package pricer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vaultchain/tracker/internal/domain"
	"go.uber.org/zap"
)

type stubEquitySource struct {
	quoteCalls  []string
	searchCalls []string
	dailyCalls  []string

	quote  func(symbol string) (domain.PriceQuote, error)
	search func(keywords string) (string, error)
	daily  func(symbol string) (domain.PriceQuote, error)
}

func (s *stubEquitySource) GlobalQuote(_ context.Context, symbol string) (domain.PriceQuote, error) {
	s.quoteCalls = append(s.quoteCalls, symbol)
	return s.quote(symbol)
}

func (s *stubEquitySource) SearchSymbol(_ context.Context, keywords string) (string, error) {
	s.searchCalls = append(s.searchCalls, keywords)
	if s.search == nil {
		return "", nil
	}
	return s.search(keywords)
}

func (s *stubEquitySource) DailyClose(_ context.Context, symbol string) (domain.PriceQuote, error) {
	s.dailyCalls = append(s.dailyCalls, symbol)
	if s.daily == nil {
		return domain.PriceQuote{}, ErrNotFound
	}
	return s.daily(symbol)
}

type stubSecondary struct {
	calls []string
	fn    func(symbol string) (domain.PriceQuote, error)
}

func (s *stubSecondary) GetPrice(_ context.Context, symbol string) (domain.PriceQuote, error) {
	s.calls = append(s.calls, symbol)
	if s.fn == nil {
		return domain.PriceQuote{}, ErrNotFound
	}
	return s.fn(symbol)
}

func realTimeQuote(price string) domain.PriceQuote {
	return domain.PriceQuote{Price: decimal.RequireFromString(price), Source: domain.SourceAlphaVantage}
}

func TestStockChainPrimarySuccess(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(string) (domain.PriceQuote, error) { return realTimeQuote("189.98"), nil },
	}
	secondary := &stubSecondary{}
	chain := NewStockChain(zap.NewNop(), primary, secondary)

	quote, err := chain.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("189.98").Equal(quote.Price))
	require.Equal(t, []string{"AAPL"}, primary.quoteCalls)
	require.Empty(t, primary.searchCalls)
	require.Empty(t, primary.dailyCalls)
	require.Empty(t, secondary.calls)
}

// A provider notice must abort the chain: no daily-close or secondary
// fetches may happen for the asset this cycle.
func TestStockChainNoticeShortCircuits(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(symbol string) (domain.PriceQuote, error) {
			return domain.PriceQuote{}, &ProviderNoticeError{Symbol: symbol, Message: "rate limit"}
		},
	}
	secondary := &stubSecondary{}
	chain := NewStockChain(zap.NewNop(), primary, secondary)

	_, err := chain.GetPrice(context.Background(), "AAPL")
	require.True(t, IsNotice(err))
	require.Equal(t, []string{"AAPL"}, primary.quoteCalls)
	require.Empty(t, primary.searchCalls)
	require.Empty(t, primary.dailyCalls)
	require.Empty(t, secondary.calls)
}

func TestStockChainRetriesSuggestedSymbol(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(symbol string) (domain.PriceQuote, error) {
			if symbol == "0700.HKG" {
				return realTimeQuote("290.40"), nil
			}
			return domain.PriceQuote{}, ErrNotFound
		},
		search: func(string) (string, error) { return "0700.HKG", nil },
	}
	chain := NewStockChain(zap.NewNop(), primary, &stubSecondary{})

	quote, err := chain.GetPrice(context.Background(), "0700.HK")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("290.40").Equal(quote.Price))
	require.Equal(t, []string{"0700.HK", "0700.HKG"}, primary.quoteCalls)
	require.Empty(t, primary.dailyCalls)
}

func TestStockChainNoticeOnRetryShortCircuits(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(symbol string) (domain.PriceQuote, error) {
			if symbol == "SUGGESTED" {
				return domain.PriceQuote{}, &ProviderNoticeError{Symbol: symbol, Message: "rate limit"}
			}
			return domain.PriceQuote{}, ErrNotFound
		},
		search: func(string) (string, error) { return "SUGGESTED", nil },
	}
	secondary := &stubSecondary{}
	chain := NewStockChain(zap.NewNop(), primary, secondary)

	_, err := chain.GetPrice(context.Background(), "AAPL")
	require.True(t, IsNotice(err))
	require.Empty(t, primary.dailyCalls)
	require.Empty(t, secondary.calls)
}

func TestStockChainDailyCloseFallback(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(string) (domain.PriceQuote, error) { return domain.PriceQuote{}, ErrNotFound },
		daily: func(string) (domain.PriceQuote, error) {
			return domain.PriceQuote{
				Price:  decimal.RequireFromString("101.25"),
				Source: domain.SourceAlphaVantageDaily,
				AsOf:   "2024-02-13",
			}, nil
		},
	}
	chain := NewStockChain(zap.NewNop(), primary, &stubSecondary{})

	quote, err := chain.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, domain.SourceAlphaVantageDaily, quote.Source)
	require.Equal(t, "2024-02-13", quote.AsOf)
	require.Equal(t, []string{"AAPL"}, primary.dailyCalls)
}

func TestStockChainSecondaryFallback(t *testing.T) {
	primary := &stubEquitySource{
		quote:  func(string) (domain.PriceQuote, error) { return domain.PriceQuote{}, ErrNotFound },
		search: func(string) (string, error) { return "SUGGESTED", nil },
	}
	secondary := &stubSecondary{
		fn: func(symbol string) (domain.PriceQuote, error) {
			if symbol == "SUGGESTED" {
				return domain.PriceQuote{Price: decimal.RequireFromString("55.10"), Source: domain.SourceYahoo}, nil
			}
			return domain.PriceQuote{}, ErrNotFound
		},
	}
	chain := NewStockChain(zap.NewNop(), primary, secondary)

	quote, err := chain.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, domain.SourceYahoo, quote.Source)
	// the daily close was tried for both symbols before the secondary
	require.Equal(t, []string{"AAPL", "SUGGESTED"}, primary.dailyCalls)
	require.Equal(t, []string{"AAPL", "SUGGESTED"}, secondary.calls)
}

func TestStockChainAllSourcesFail(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(string) (domain.PriceQuote, error) { return domain.PriceQuote{}, ErrNotFound },
	}
	chain := NewStockChain(zap.NewNop(), primary, &stubSecondary{})

	_, err := chain.GetPrice(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStockChainWithoutSecondary(t *testing.T) {
	primary := &stubEquitySource{
		quote: func(string) (domain.PriceQuote, error) { return domain.PriceQuote{}, ErrNotFound },
	}
	chain := NewStockChain(zap.NewNop(), primary, nil)

	_, err := chain.GetPrice(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrNotFound)
}
