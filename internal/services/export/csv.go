// Package export persists valuation results as timestamped CSV files.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vaultchain/tracker/internal/domain"
)

// ErrEmptyPortfolio is returned when there is nothing to export.
// Callers treat it as an explicit no-op, not a failure.
var ErrEmptyPortfolio = errors.New("nothing to export: portfolio is empty")

var header = []string{"Asset", "Quantity", "Price(USD)", "Value(USD)"}

// WriteCSV serializes a non-empty result into dir under a timestamped name
// like vaultchain_portfolio_20240213_154500.csv and returns the full path.
func WriteCSV(result domain.PortfolioResult, dir string) (string, error) {
	if result.Empty() {
		return "", ErrEmptyPortfolio
	}

	name := "vaultchain_portfolio_" + time.Now().Format("20060102_150405") + ".csv"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", errors.Wrap(err, "write csv header")
	}
	for _, row := range result.Rows {
		record := []string{
			row.Asset,
			row.Quantity.String(),
			row.Price.String(),
			row.Value.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return "", errors.Wrapf(err, "write csv row for %s", row.Asset)
		}
	}
	if err := w.Write([]string{"Total", "-", "-", result.Total.StringFixed(2)}); err != nil {
		return "", errors.Wrap(err, "write csv total")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flush csv")
	}
	return path, nil
}

// ReadCSV parses a file produced by WriteCSV back into a result.
func ReadCSV(path string) (domain.PortfolioResult, error) {
	var result domain.PortfolioResult

	f, err := os.Open(path)
	if err != nil {
		return result, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return result, errors.Wrapf(err, "read %s", path)
	}
	if len(records) == 0 {
		return result, errors.Errorf("%s has no header", path)
	}

	result.Total = decimal.Zero
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return result, errors.Errorf("malformed record %v", record)
		}
		if record[0] == "Total" {
			result.Total, err = decimal.NewFromString(record[3])
			if err != nil {
				return result, errors.Wrap(err, "parse total")
			}
			break
		}

		var row domain.ValuationRow
		row.Asset = record[0]
		if row.Quantity, err = decimal.NewFromString(record[1]); err != nil {
			return result, errors.Wrapf(err, "parse quantity for %s", row.Asset)
		}
		if row.Price, err = decimal.NewFromString(record[2]); err != nil {
			return result, errors.Wrapf(err, "parse price for %s", row.Asset)
		}
		if row.Value, err = decimal.NewFromString(record[3]); err != nil {
			return result, errors.Wrapf(err, "parse value for %s", row.Asset)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}
