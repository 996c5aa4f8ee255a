package valuation

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vaultchain/tracker/internal/domain"
	"github.com/vaultchain/tracker/internal/services/pricer"
	"go.uber.org/zap"
)

type stubCrypto struct {
	prices map[string]string
	calls  []string
}

func (s *stubCrypto) GetPrice(_ context.Context, coinID string) (domain.PriceQuote, error) {
	s.calls = append(s.calls, coinID)
	raw, ok := s.prices[coinID]
	if !ok {
		return domain.PriceQuote{}, errors.Wrapf(pricer.ErrNotFound, "no price for %s", coinID)
	}
	return domain.PriceQuote{Price: decimal.RequireFromString(raw), Source: domain.SourceCoinGecko}, nil
}

type stubStocks struct {
	prices map[string]string
	calls  []string
}

func (s *stubStocks) GetPrice(_ context.Context, symbol string) (domain.PriceQuote, error) {
	s.calls = append(s.calls, symbol)
	raw, ok := s.prices[symbol]
	if !ok {
		return domain.PriceQuote{}, errors.Wrapf(pricer.ErrNotFound, "no price for %s", symbol)
	}
	return domain.PriceQuote{Price: decimal.RequireFromString(raw), Source: domain.SourceAlphaVantage}, nil
}

func holding(asset, quantity string) domain.Holding {
	return domain.Holding{Asset: asset, Quantity: decimal.RequireFromString(quantity)}
}

func TestCalculateSingleCryptoHolding(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"bitcoin": "50000"}}
	engine := NewEngine(zap.NewNop(), crypto, nil)

	result := engine.Calculate(context.Background(), []domain.Holding{holding("BTC", "0.01")})

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	require.Equal(t, "BTC", row.Asset)
	require.True(t, decimal.RequireFromString("0.01").Equal(row.Quantity))
	require.True(t, decimal.NewFromInt(50000).Equal(row.Price), "got %s", row.Price)
	require.True(t, decimal.NewFromInt(500).Equal(row.Value), "got %s", row.Value)
	require.True(t, decimal.NewFromInt(500).Equal(result.Total), "got %s", result.Total)
	require.Equal(t, []string{"bitcoin"}, crypto.calls)
}

func TestCalculateMixedPortfolio(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"bitcoin": "50000", "ethereum": "2500"}}
	stocks := &stubStocks{prices: map[string]string{"AAPL": "190", "0700.HK": "290.40"}}
	engine := NewEngine(zap.NewNop(), crypto, stocks)

	result := engine.Calculate(context.Background(), []domain.Holding{
		holding("BTC", "0.01"),
		holding("ETH", "0.2"),
		holding("AAPL", "1"),
		holding("700.HK", "2"),
	})

	require.Len(t, result.Rows, 4)
	// normalization happened before the stock fetch
	require.Equal(t, []string{"AAPL", "0700.HK"}, stocks.calls)
	// 500 + 500 + 190 + 580.80
	require.True(t, decimal.RequireFromString("1770.80").Equal(result.Total), "got %s", result.Total)
}

func TestCalculateFailedAssetDoesNotAbortOthers(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"bitcoin": "50000"}}
	engine := NewEngine(zap.NewNop(), crypto, nil)

	result := engine.Calculate(context.Background(), []domain.Holding{
		holding("unknowncoin", "5"),
		holding("BTC", "0.01"),
	})

	require.Len(t, result.Rows, 1)
	require.Equal(t, "BTC", result.Rows[0].Asset)
	require.True(t, decimal.NewFromInt(500).Equal(result.Total))
}

func TestCalculateStocksDisabledWithoutKey(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"bitcoin": "50000"}}
	engine := NewEngine(zap.NewNop(), crypto, nil)

	result := engine.Calculate(context.Background(), []domain.Holding{
		holding("AAPL", "1"),
		holding("BTC", "0.01"),
	})

	require.Len(t, result.Rows, 1)
	require.Equal(t, "BTC", result.Rows[0].Asset)
}

func TestCalculateSkipsNonPositiveQuantity(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"bitcoin": "50000"}}
	engine := NewEngine(zap.NewNop(), crypto, nil)

	result := engine.Calculate(context.Background(), []domain.Holding{
		holding("BTC", "0"),
		holding("ETH", "-1"),
	})

	require.True(t, result.Empty())
	require.Empty(t, crypto.calls)
}

func TestCalculateEmptyHoldings(t *testing.T) {
	engine := NewEngine(zap.NewNop(), &stubCrypto{}, nil)

	result := engine.Calculate(context.Background(), nil)
	require.True(t, result.Empty())
	require.True(t, result.Total.IsZero())
}

func TestCalculateRounding(t *testing.T) {
	crypto := &stubCrypto{prices: map[string]string{"pepe": "0.0000123456789"}}
	engine := NewEngine(zap.NewNop(), crypto, nil)

	result := engine.Calculate(context.Background(), []domain.Holding{holding("pepe", "1000000")})

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	// price keeps 6 fractional digits, value 2
	require.True(t, decimal.RequireFromString("0.000012").Equal(row.Price), "got %s", row.Price)
	require.True(t, decimal.RequireFromString("12.35").Equal(row.Value), "got %s", row.Value)
	require.True(t, result.Total.Equal(row.Value))
}
