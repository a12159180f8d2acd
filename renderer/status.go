// Package renderer turns pipeline reports into markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/rgusmao/stonks"
)

// StatusMarkdown renders the full status report: the profit windows followed
// by the wallet composition.
func StatusMarkdown(s stonks.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Wallet status, %s\n\n", s.Date)

	windows := []struct {
		name string
		w    stonks.WindowProfit
	}{
		{"Day", s.Daily},
		{"Month", s.Monthly},
		{"Year", s.Annual},
		{"Total", s.Overall},
	}
	fmt.Fprintln(&b, "| Window | From | To | Profit | Return |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, row := range windows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s %% |\n",
			row.name,
			row.w.From,
			row.w.To,
			row.w.Profit.BRL(),
			row.w.Yield,
		)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "## Holdings, %s\n\n", s.Date)
	fmt.Fprintln(&b, "| Ticker | Quantity | Price | Value | % |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, h := range s.Holdings {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			h.Ticker,
			h.Quantity,
			h.Price.Round2().BRL(),
			h.Value.BRL(),
			h.Share,
		)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Total value: %s\n\n", s.Total.BRL())
	fmt.Fprintf(&b, "Contributions to date: %s\n\n", stonks.BRL(s.Contributions))
	fmt.Fprintf(&b, "Withdrawals to date: %s\n", stonks.BRL(s.Withdrawals))
	return b.String()
}
