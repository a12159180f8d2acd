package stonks

import (
	"testing"

	"github.com/shopspring/decimal"
)

// day builds one element of a dense portfolio series.
func day(date string, contrib, withdraw float64, total Value) PortfolioSnapshot {
	return PortfolioSnapshot{
		Date:          MustDate(date),
		Contributions: decimal.NewFromFloat(contrib),
		Withdrawals:   decimal.NewFromFloat(withdraw),
		Total:         total,
	}
}

func TestProfit(t *testing.T) {
	portfolio := []PortfolioSnapshot{
		day("01/01/2024", 2000, 0, V(2000)),
		day("02/01/2024", 2000, 0, V(2100)),
		day("03/01/2024", 2500, 0, V(2650)),
		day("04/01/2024", 2500, 1000, V(1700)),
		day("05/01/2024", 2500, 1000, V(1800)),
	}

	tests := []struct {
		name     string
		from, to string
		profit   Value
		yield    Value
	}{
		// 2100 -> 2650 with 500 contributed: gained 50 on 2600 exposed.
		{"with contribution", "02/01/2024", "03/01/2024", V(50), V(1.92)},
		// 2650 -> 1700 with 1000 withdrawn: gained 50.
		{"with withdrawal", "03/01/2024", "04/01/2024", V(50), V(1.89)},
		// full series: 2000 -> 1800, +500 in, +1000 out.
		{"whole series", "01/01/2024", "05/01/2024", V(300), V(12)},
		// window starting before the series clamps to the first day.
		{"clamped from", "20/12/2023", "02/01/2024", V(100), V(5)},
		// window ending after the series clamps to the last day.
		{"clamped to", "04/01/2024", "20/01/2024", V(100), V(5.88)},
		{"degenerate single day", "03/01/2024", "03/01/2024", Unknown, Unknown},
		{"degenerate inverted", "04/01/2024", "02/01/2024", Unknown, Unknown},
		{"degenerate before series", "10/12/2023", "20/12/2023", Unknown, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profit, yield := Profit(portfolio, MustDate(tt.from), MustDate(tt.to))
			if !profit.Equal(tt.profit) {
				t.Errorf("profit = %s, want %s", profit, tt.profit)
			}
			if !yield.Equal(tt.yield) {
				t.Errorf("yield = %s, want %s", yield, tt.yield)
			}
		})
	}
}

func TestProfitUnknownTotal(t *testing.T) {
	portfolio := []PortfolioSnapshot{
		day("01/01/2024", 2000, 0, V(2000)),
		day("02/01/2024", 2000, 0, Unknown),
		day("03/01/2024", 2000, 0, V(2200)),
	}

	// An unknown endpoint poisons the result.
	profit, yield := Profit(portfolio, MustDate("01/01/2024"), MustDate("02/01/2024"))
	if profit.IsKnown() || yield.IsKnown() {
		t.Errorf("got %s (%s %%), want ? (? %%)", profit, yield)
	}

	// Unknown days strictly inside the window are irrelevant.
	profit, yield = Profit(portfolio, MustDate("01/01/2024"), MustDate("03/01/2024"))
	if !profit.Equal(V(200)) || !yield.Equal(V(10)) {
		t.Errorf("got %s (%s %%), want 200 (10 %%)", profit, yield)
	}
}

func TestProfitEmptySeries(t *testing.T) {
	profit, yield := Profit(nil, MustDate("01/01/2024"), MustDate("05/01/2024"))
	if profit.IsKnown() || yield.IsKnown() {
		t.Errorf("got %s (%s %%), want ? (? %%)", profit, yield)
	}
}
