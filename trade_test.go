package stonks

import "testing"

func TestTradeValidate(t *testing.T) {
	valid := Trade{
		Date:       MustDate("05/01/2021"),
		Side:       Buy,
		MarketType: "OPCAO DE COMPRA",
		Expiration: MustDate("18/01/2021"),
		Spec:       "PETRA240 ON",
		Quantity:   100,
	}

	tests := []struct {
		name   string
		mutate func(*Trade)
		ok     bool
	}{
		{"valid option", func(*Trade) {}, true},
		{"valid stock", func(t *Trade) { t.MarketType = "VISTA"; t.Expiration = Date{} }, true},
		{"no date", func(t *Trade) { t.Date = Date{} }, false},
		{"bad side", func(t *Trade) { t.Side = "X" }, false},
		{"zero quantity", func(t *Trade) { t.Quantity = 0 }, false},
		{"option without expiration", func(t *Trade) { t.Expiration = Date{} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := valid
			tt.mutate(&trade)
			if err := trade.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
