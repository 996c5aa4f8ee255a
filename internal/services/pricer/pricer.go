// Package pricer implements the per-provider price fetchers and the
// fallback chain that sequences them for equity assets.
package pricer

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vaultchain/tracker/internal/domain"
)

const (
	// quoteTimeout bounds real-time quote and search calls.
	quoteTimeout = 15 * time.Second
	// seriesTimeout bounds the heavier time-series calls.
	seriesTimeout = 20 * time.Second
)

// ErrNotFound signals that a provider has no data for an identifier.
// The fallback chain treats it as a cue to try the next source.
var ErrNotFound = errors.New("price not found")

// ProviderNoticeError is a rate-limit or informational message embedded in
// an otherwise successful provider response. The chain aborts all remaining
// fallback attempts for the asset when it sees one.
type ProviderNoticeError struct {
	Symbol  string
	Message string
}

func (e *ProviderNoticeError) Error() string {
	return fmt.Sprintf("provider notice for %s: %s", e.Symbol, e.Message)
}

// IsNotice reports whether err carries a provider notice.
func IsNotice(err error) bool {
	var notice *ProviderNoticeError
	return errors.As(err, &notice)
}

// CryptoPricer provides the current price of a canonical coin id.
type CryptoPricer interface {
	GetPrice(ctx context.Context, coinID string) (domain.PriceQuote, error)
}

// StockPricer provides the current price of a normalized equity ticker.
type StockPricer interface {
	GetPrice(ctx context.Context, symbol string) (domain.PriceQuote, error)
}
