package stonks

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// WindowProfit is the gain and nominal return over one reporting window.
type WindowProfit struct {
	From   Date
	To     Date
	Profit Value
	Yield  Value
}

// HoldingStatus is one row of the wallet table: a held security valued at the
// report date's close.
type HoldingStatus struct {
	Ticker   string
	Quantity int64
	Price    Value
	Value    Value
	Share    Value // percentage of the wallet total
}

// Status is the full report: the standard profit windows plus the wallet
// composition, all anchored at the last day of the portfolio series.
type Status struct {
	Date          Date
	Daily         WindowProfit
	Monthly       WindowProfit
	Annual        WindowProfit
	Overall       WindowProfit
	Holdings      []HoldingStatus
	Total         Value
	Contributions decimal.Decimal
	Withdrawals   decimal.Decimal
}

// windowProfit evaluates one window against the series.
func windowProfit(portfolio []PortfolioSnapshot, from, to Date) WindowProfit {
	profit, yield := Profit(portfolio, from, to)
	return WindowProfit{From: from, To: to, Profit: profit, Yield: yield}
}

// BuildStatus derives the status report from the position and portfolio
// series. The month and year windows open on the last day of the previous
// month and year, so they measure the change since the period began.
func BuildStatus(positions []PositionSnapshot, portfolio []PortfolioSnapshot) (Status, error) {
	if len(portfolio) == 0 {
		return Status{}, fmt.Errorf("empty portfolio series")
	}
	last := portfolio[len(portfolio)-1]
	anchor := last.Date

	monthStart := NewDate(anchor.Year(), anchor.Month(), 0)
	yearStart := NewDate(anchor.Year()-1, 12, 31)

	status := Status{
		Date:          anchor,
		Daily:         windowProfit(portfolio, anchor.Add(-1), anchor),
		Monthly:       windowProfit(portfolio, monthStart, anchor),
		Annual:        windowProfit(portfolio, yearStart, anchor),
		Overall:       windowProfit(portfolio, portfolio[0].Date, anchor),
		Total:         last.Total,
		Contributions: last.Contributions,
		Withdrawals:   last.Withdrawals,
	}

	// Quantities come from the latest position snapshot not after the anchor;
	// the ledger may hold a newer snapshot than the valued series does.
	p := len(positions) - 1
	for p >= 0 && positions[p].Date.After(anchor) {
		p--
	}
	if p < 0 {
		return Status{}, fmt.Errorf("no position snapshot on or before %s", anchor)
	}
	quantities := positions[p].Holdings

	for ticker, value := range last.Holdings {
		qty := quantities[ticker]
		row := HoldingStatus{Ticker: ticker, Quantity: qty, Value: value}
		row.Price = value.Div(V(qty))
		row.Share = V(100).Mul(value).Div(last.Total).Round2()
		status.Holdings = append(status.Holdings, row)
	}
	sort.Slice(status.Holdings, func(i, j int) bool {
		a, b := status.Holdings[i], status.Holdings[j]
		switch {
		case a.Share.IsKnown() != b.Share.IsKnown():
			return a.Share.IsKnown()
		case !a.Share.IsKnown():
			return a.Ticker < b.Ticker
		default:
			return a.Share.Decimal().GreaterThan(b.Share.Decimal())
		}
	})

	return status, nil
}
