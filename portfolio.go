package stonks

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot is the valuation of the wallet at the close of one day:
// quantity times closing price per ticker, the running cash totals, and the
// grand total. Unlike the position series, the portfolio series is dense, one
// element per calendar day. A ticker whose price is not cached for the day
// values to Unknown, which makes the day's total Unknown as well.
type PortfolioSnapshot struct {
	Date          Date             `json:"date"`
	Contributions decimal.Decimal  `json:"contributions"`
	Withdrawals   decimal.Decimal  `json:"withdrawals"`
	Total         Value            `json:"total"`
	Holdings      map[string]Value `json:"holdings"`
}

// CalculatePortfolio values the wallet for every calendar day from the first
// position snapshot through yesterday, loading each ticker's price history at
// most once. The bar lookup keeps a per-ticker cursor so consecutive days cost
// O(1) except across coverage discontinuities.
func CalculatePortfolio(positions []PositionSnapshot, store HistoryStore, today Date) ([]PortfolioSnapshot, error) {
	if len(positions) == 0 {
		return nil, nil
	}
	end := today.Add(-1)

	histories := make(map[string]*PriceHistory)
	cursors := make(map[string]int)
	var portfolio []PortfolioSnapshot

	for i, position := range positions {
		day := position.Date
		// Value this position for each day until the next snapshot takes
		// over, or through yesterday for the last one.
		for (i+1 < len(positions) && day.Before(positions[i+1].Date)) ||
			(i+1 == len(positions) && !day.After(end)) {

			snapshot := PortfolioSnapshot{
				Date:          day,
				Contributions: position.Contributions,
				Withdrawals:   position.Withdrawals,
				Total:         V(0),
				Holdings:      make(map[string]Value, len(position.Holdings)),
			}

			for ticker, qty := range position.Holdings {
				h, ok := histories[ticker]
				if !ok {
					loaded, found, err := store.LoadHistory(ticker)
					if err != nil {
						return nil, fmt.Errorf("loading history of %s: %w", ticker, err)
					}
					if found {
						h = &loaded
					}
					histories[ticker] = h
					cursors[ticker] = -1
				}

				value := Unknown
				if h != nil {
					if index := h.indexOf(day, cursors[ticker]+1); index >= 0 {
						cursors[ticker] = index
						value = V(qty).Mul(V(h.Bars[index].Close)).Round2()
						snapshot.Total = snapshot.Total.Add(value).Round2()
					}
				}
				snapshot.Holdings[ticker] = value
			}

			for _, v := range snapshot.Holdings {
				if !v.IsKnown() {
					snapshot.Total = Unknown
					break
				}
			}
			portfolio = append(portfolio, snapshot)
			day = day.Add(1)
		}
	}

	return portfolio, nil
}

// Tickers returns the distinct tickers appearing anywhere in the series,
// sorted. Used for the spreadsheet column layout.
func Tickers(portfolio []PortfolioSnapshot) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, snapshot := range portfolio {
		for ticker := range snapshot.Holdings {
			if !seen[ticker] {
				seen[ticker] = true
				tickers = append(tickers, ticker)
			}
		}
	}
	sort.Strings(tickers)
	return tickers
}
