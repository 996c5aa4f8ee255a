// Package setup contains the interactive terminal prompts used when the
// tracker is started without holdings flags.
package setup

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().Foreground(subtle)
)

// Banner returns the styled startup banner.
func Banner() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render("VaultChain-Tracker v0.1 - Privacy-first Crypto/Stock Tracker"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("- Real-time prices (BTC, ETH, AAPL)\n- Local portfolio tracking\n- CSV export"))
	b.WriteString("\n")
	return b.String()
}

// Examples returns the example holdings lines shown by --examples and the
// interactive "examples" command.
func Examples() string {
	return strings.Join([]string{
		"Examples (copy/paste one line):",
		`- Crypto: {"BTC": 0.01, "ETH": 0.2, "SOL": 3}`,
		`- Stocks (US): {"AAPL": 1, "MSFT": 2, "NVDA": 1}`,
		`- ETF: {"SPY": 1, "QQQ": 1, "VTI": 1}`,
		`- International: {"700.HK": 2, "7203.T": 1, "RIO.L": 3}`,
		`- Mixed: {"BTC": 0.005, "AAPL": 1}`,
	}, "\n")
}

// PromptAPIKey asks once for the equities API key. An empty answer skips
// stock pricing for the run.
func PromptAPIKey() (string, error) {
	var key string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Alpha Vantage API key").
				Description("Press Enter to skip stocks for this run").
				EchoMode(huh.EchoModePassword).
				Value(&key),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// PromptHoldings asks for a holdings literal or one of the commands
// "quit" and "examples".
func PromptHoldings() (string, error) {
	var raw string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter holdings").
				Description(`e.g. {"BTC": 0.01, "ETH": 0.2, "SOL": 3} or "quit" or "examples"`).
				Value(&raw),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// ConfirmWatch asks whether to keep refreshing the valuation.
func ConfirmWatch() (bool, error) {
	var watch bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Refresh every 5 minutes?").
				Affirmative("Watch").
				Negative("Continue").
				Value(&watch),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return watch, nil
}
