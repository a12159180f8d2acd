package stonks

import (
	"testing"
)

func TestBuildStatus(t *testing.T) {
	positions := []PositionSnapshot{
		{Date: MustDate("28/12/2023"), Holdings: map[string]int64{"PETR4": 100}},
		{Date: MustDate("03/01/2024"), Holdings: map[string]int64{"PETR4": 100, "VALE3": 10}},
	}
	portfolio := []PortfolioSnapshot{
		day("28/12/2023", 2000, 0, V(2000)),
		day("29/12/2023", 2000, 0, V(2050)),
		day("30/12/2023", 2000, 0, V(2050)),
		day("31/12/2023", 2000, 0, V(2080)),
		day("01/01/2024", 2000, 0, V(2100)),
		day("02/01/2024", 2000, 0, V(2150)),
		day("03/01/2024", 2700, 0, V(2900)),
		day("04/01/2024", 2700, 0, V(2950)),
	}
	portfolio[7].Holdings = map[string]Value{"PETR4": V(2250), "VALE3": V(700)}

	status, err := BuildStatus(positions, portfolio)
	if err != nil {
		t.Fatal(err)
	}

	if status.Date != MustDate("04/01/2024") {
		t.Errorf("status date = %s, want 04/01/2024", status.Date)
	}
	if !status.Daily.Profit.Equal(V(50)) {
		t.Errorf("daily profit = %s, want 50", status.Daily.Profit)
	}
	// Month window opens on the last day of December.
	if status.Monthly.From != MustDate("31/12/2023") {
		t.Errorf("month window from %s, want 31/12/2023", status.Monthly.From)
	}
	// 2080 -> 2950 with 700 contributed.
	if !status.Monthly.Profit.Equal(V(170)) {
		t.Errorf("monthly profit = %s, want 170", status.Monthly.Profit)
	}
	if status.Annual.From != MustDate("31/12/2023") {
		t.Errorf("year window from %s, want 31/12/2023", status.Annual.From)
	}
	// 2000 -> 2950 with 700 contributed.
	if !status.Overall.Profit.Equal(V(250)) {
		t.Errorf("total profit = %s, want 250", status.Overall.Profit)
	}

	if len(status.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(status.Holdings))
	}
	top := status.Holdings[0]
	if top.Ticker != "PETR4" || top.Quantity != 100 {
		t.Errorf("top holding = %s x%d, want PETR4 x100", top.Ticker, top.Quantity)
	}
	if !top.Price.Equal(V(22.5)) {
		t.Errorf("top price = %s, want 22.5", top.Price)
	}
	// 2250 of 2950.
	if !top.Share.Equal(V(76.27)) {
		t.Errorf("top share = %s, want 76.27", top.Share)
	}
	if !status.Total.Equal(V(2950)) {
		t.Errorf("total = %s, want 2950", status.Total)
	}
}

func TestBuildStatusEmpty(t *testing.T) {
	if _, err := BuildStatus(nil, nil); err == nil {
		t.Errorf("BuildStatus(nil, nil) should fail")
	}
}
