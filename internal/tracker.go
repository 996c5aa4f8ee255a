package internal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vaultchain/tracker/internal/domain"
	"github.com/vaultchain/tracker/internal/services/export"
	"github.com/vaultchain/tracker/internal/services/render"
	"go.uber.org/zap"
)

// Valuer runs one full valuation over a set of holdings.
type Valuer interface {
	Calculate(ctx context.Context, holdings []domain.Holding) domain.PortfolioResult
}

// Tracker orchestrates a valuation cycle: value, render, export.
type Tracker struct {
	l         *zap.Logger
	engine    Valuer
	exportDir string
	out       io.Writer
}

// NewTracker creates a tracker writing rendered tables to out.
func NewTracker(l *zap.Logger, engine Valuer, exportDir string, out io.Writer) *Tracker {
	return &Tracker{l: l, engine: engine, exportDir: exportDir, out: out}
}

// RunOnce values the holdings, prints the table and exports the CSV.
// Export failures are logged, never fatal.
func (t *Tracker) RunOnce(ctx context.Context, holdings []domain.Holding) error {
	l := t.l.With(zap.String("run_id", uuid.NewString()))
	l.Info("valuation cycle started", zap.Int("holdings", len(holdings)))

	result := t.engine.Calculate(ctx, holdings)
	fmt.Fprintln(t.out, render.Table(result))

	path, err := export.WriteCSV(result, t.exportDir)
	switch {
	case errors.Is(err, export.ErrEmptyPortfolio):
		l.Info("nothing to export, portfolio is empty")
	case err != nil:
		l.Warn("csv export failed", zap.Error(err))
	default:
		fmt.Fprintf(t.out, "Exported to %s\n", path)
		l.Info("exported", zap.String("path", path))
	}

	return ctx.Err()
}

// Watch re-runs the full cycle at the given interval until ctx is cancelled.
func (t *Tracker) Watch(ctx context.Context, holdings []domain.Holding, interval time.Duration) error {
	fmt.Fprintf(t.out, "Watching portfolio every %s. Press Ctrl+C to stop.\n\n", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := t.RunOnce(ctx, holdings); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out, "\nStopped watching.")
			return nil
		case <-ticker.C:
		}
	}
}
