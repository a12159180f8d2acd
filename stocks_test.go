package stonks

import (
	"reflect"
	"testing"
)

func TestStockType(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"PETR4", "PN"},
		{"PETR3", "ON"},
		{"VALE3", "ON"},
		{"SANB11", "UNT"},
		{"PETR4B", "PN"}, // fractional market suffix
		{"ABCD12", ""},   // unknown numeric suffix
		{"ABC", ""},      // too short
	}
	for _, tt := range tests {
		if got := StockType(tt.ticker); got != tt.want {
			t.Errorf("StockType(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}

func TestStocksOf(t *testing.T) {
	companies := []Company{
		{Name: "VALE", Segment: "NM", Tickers: []string{"VALE3"}},
		{Name: "PETROBRAS", Segment: "N2", Tickers: []string{"PETR4", "PETR3"}},
	}
	got := StocksOf(companies)
	want := []Stock{
		{Name: "PETROBRAS", Type: "PN", Segment: "N2", Ticker: "PETR4"},
		{Name: "PETROBRAS", Type: "ON", Segment: "N2", Ticker: "PETR3"},
		{Name: "VALE", Type: "ON", Segment: "NM", Ticker: "VALE3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StocksOf = %v, want %v", got, want)
	}
}

func TestResolveTickers(t *testing.T) {
	stocks := []Stock{
		{Name: "PETROBRAS", Type: "PN", Ticker: "PETR4"},
		{Name: "PETROBRAS", Type: "ON", Ticker: "PETR3"},
	}
	option := Trade{
		Date:       MustDate("05/01/2021"),
		MarketType: "OPCAO DE COMPRA",
		Expiration: MustDate("18/01/2021"),
		Spec:       "PETRA240 ON 24,00",
	}
	trades := []Trade{
		{Date: MustDate("04/01/2021"), MarketType: "VISTA", Spec: "PETROBRAS PN N2"},
		option,
		{Date: MustDate("06/01/2021"), MarketType: "VISTA", Spec: "PETROBRAS PN N2"}, // memo hit
		{Date: MustDate("07/01/2021"), MarketType: "VISTA", Spec: "PETROBRAS ON N2"},
	}

	tickers := ResolveTickers(trades, stocks)

	wantTickers := []string{"PETR4", "PETRA240 01/21", "PETR3"}
	if !reflect.DeepEqual(tickers, wantTickers) {
		t.Errorf("tickers = %v, want %v", tickers, wantTickers)
	}
	wantResolved := []string{"PETR4", "PETRA240 01/21", "PETR4", "PETR3"}
	for i, want := range wantResolved {
		if trades[i].Ticker != want {
			t.Errorf("trade %d ticker = %q, want %q", i, trades[i].Ticker, want)
		}
	}
}
