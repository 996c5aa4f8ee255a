package domain

import "github.com/shopspring/decimal"

// ValuationRow is one priced position of the portfolio.
type ValuationRow struct {
	// Asset raw user token the row was built from.
	Asset string
	// Quantity amount of the asset held.
	Quantity decimal.Decimal
	// Price unit price rounded to 6 fractional digits.
	Price decimal.Decimal
	// Value price times quantity rounded to 2 fractional digits.
	Value decimal.Decimal
	// Source provider the price came from.
	Source Source
	// AsOf close date when the price is a daily close, empty otherwise.
	AsOf string
}

// PortfolioResult is the ordered outcome of one valuation cycle.
// An asset missing from Rows means no source returned data for it.
type PortfolioResult struct {
	Rows []ValuationRow
	// Total exact sum of all row values. Each value cell is rounded to
	// 2 digits before summation, so the total equals the sum of the
	// rendered cells without further rounding.
	Total decimal.Decimal
}

// Empty reports whether no asset could be priced.
func (r PortfolioResult) Empty() bool {
	return len(r.Rows) == 0
}
