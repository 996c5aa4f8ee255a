// Package render draws valuation results as terminal tables.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vaultchain/tracker/internal/domain"
)

var (
	borderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	headerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	totalColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().Foreground(headerColor).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Foreground(totalColor).Bold(true).Padding(0, 1)
)

// Table renders the result as an aligned table with a trailing Total row.
func Table(result domain.PortfolioResult) string {
	if result.Empty() {
		return "No data to display."
	}

	totalRow := len(result.Rows)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case totalRow:
				return totalStyle
			default:
				return cellStyle
			}
		}).
		Headers("Asset", "Quantity", "Price(USD)", "Value(USD)", "Note")

	for _, row := range result.Rows {
		note := row.Source.String()
		if row.AsOf != "" {
			note += " close " + row.AsOf
		}
		t.Row(row.Asset, row.Quantity.String(), row.Price.String(), row.Value.StringFixed(2), note)
	}
	t.Row("Total", "-", "-", result.Total.StringFixed(2), "")

	return t.String()
}
