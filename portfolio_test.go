package stonks

import (
	"testing"

	"github.com/shopspring/decimal"
)

// fullHistory builds a day-complete history with a constant close per range.
func fullHistory(close float64, ranges ...Range) PriceHistory {
	h := PriceHistory{Ranges: ranges}
	for _, r := range ranges {
		for day := range r.Days() {
			h.Bars = append(h.Bars, bar(day.String(), close))
		}
	}
	return h
}

func TestCalculatePortfolio(t *testing.T) {
	store := newMemStore()
	store.histories["PETR4"] = fullHistory(20, rng("01/01/2024", "10/01/2024"))

	positions := []PositionSnapshot{{
		Date:          MustDate("01/01/2024"),
		Contributions: decimal.NewFromInt(2000),
		Holdings:      map[string]int64{"PETR4": 100},
	}}
	portfolio, err := CalculatePortfolio(positions, store, MustDate("11/01/2024"))
	if err != nil {
		t.Fatal(err)
	}

	// Dense series, one element per day through yesterday.
	if len(portfolio) != 10 {
		t.Fatalf("got %d days, want 10", len(portfolio))
	}
	for i, day := range portfolio {
		if day.Date != MustDate("01/01/2024").Add(i) {
			t.Errorf("day %d dated %s", i, day.Date)
		}
		if !day.Total.Equal(V(2000)) {
			t.Errorf("day %s total = %s, want 2000", day.Date, day.Total)
		}
		if !day.Holdings["PETR4"].Equal(V(2000)) {
			t.Errorf("day %s PETR4 = %s, want 2000", day.Date, day.Holdings["PETR4"])
		}
		if !day.Contributions.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("day %s contributions = %s", day.Date, day.Contributions)
		}
	}
}

func TestCalculatePortfolioUnknownPrice(t *testing.T) {
	store := newMemStore()
	store.histories["PETR4"] = fullHistory(20, rng("01/01/2024", "10/01/2024"))
	// VALE3 is missing 09/01 and 10/01.
	store.histories["VALE3"] = fullHistory(70, rng("05/01/2024", "08/01/2024"))

	positions := []PositionSnapshot{
		{
			Date:          MustDate("01/01/2024"),
			Contributions: decimal.NewFromInt(2000),
			Holdings:      map[string]int64{"PETR4": 100},
		},
		{
			Date:          MustDate("05/01/2024"),
			Contributions: decimal.NewFromInt(2700),
			Holdings:      map[string]int64{"PETR4": 100, "VALE3": 10},
		},
	}
	portfolio, err := CalculatePortfolio(positions, store, MustDate("11/01/2024"))
	if err != nil {
		t.Fatal(err)
	}
	if len(portfolio) != 10 {
		t.Fatalf("got %d days, want 10", len(portfolio))
	}

	known := portfolio[7] // 08/01, both priced
	if !known.Total.Equal(V(2700)) {
		t.Errorf("day %s total = %s, want 2700", known.Date, known.Total)
	}

	// One unknown ticker poisons the day's total, the known ticker keeps
	// its value.
	broken := portfolio[8] // 09/01, VALE3 unpriced
	if broken.Total.IsKnown() {
		t.Errorf("day %s total = %s, want ?", broken.Date, broken.Total)
	}
	if broken.Holdings["VALE3"].IsKnown() {
		t.Errorf("day %s VALE3 = %s, want ?", broken.Date, broken.Holdings["VALE3"])
	}
	if !broken.Holdings["PETR4"].Equal(V(2000)) {
		t.Errorf("day %s PETR4 = %s, want 2000", broken.Date, broken.Holdings["PETR4"])
	}
}

func TestCalculatePortfolioCoverageHole(t *testing.T) {
	store := newMemStore()
	store.histories["PETR4"] = fullHistory(20,
		rng("01/01/2024", "03/01/2024"), rng("06/01/2024", "10/01/2024"))

	positions := []PositionSnapshot{{
		Date:     MustDate("01/01/2024"),
		Holdings: map[string]int64{"PETR4": 100},
	}}
	portfolio, err := CalculatePortfolio(positions, store, MustDate("11/01/2024"))
	if err != nil {
		t.Fatal(err)
	}

	for _, day := range portfolio {
		inHole := day.Date.After(MustDate("03/01/2024")) && day.Date.Before(MustDate("06/01/2024"))
		if inHole && day.Total.IsKnown() {
			t.Errorf("day %s total = %s, want ?", day.Date, day.Total)
		}
		// After the hole, the bar cursor must recover.
		if !inHole && !day.Total.Equal(V(2000)) {
			t.Errorf("day %s total = %s, want 2000", day.Date, day.Total)
		}
	}
}

func TestCalculatePortfolioNoHistory(t *testing.T) {
	positions := []PositionSnapshot{{
		Date:     MustDate("01/01/2024"),
		Holdings: map[string]int64{"PETR4": 100},
	}}
	portfolio, err := CalculatePortfolio(positions, newMemStore(), MustDate("03/01/2024"))
	if err != nil {
		t.Fatal(err)
	}
	for _, day := range portfolio {
		if day.Total.IsKnown() {
			t.Errorf("day %s total = %s, want ?", day.Date, day.Total)
		}
	}
}

func TestTickers(t *testing.T) {
	portfolio := []PortfolioSnapshot{
		{Holdings: map[string]Value{"VALE3": V(1), "PETR4": V(2)}},
		{Holdings: map[string]Value{"PETR4": V(2), "ITUB4": V(3)}},
	}
	got := Tickers(portfolio)
	want := []string{"ITUB4", "PETR4", "VALE3"}
	if len(got) != len(want) {
		t.Fatalf("Tickers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tickers[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
