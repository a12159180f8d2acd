package stonks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade, persisted with the broker's own codes.
type Side string

const (
	Buy  Side = "C" // compra
	Sell Side = "V" // venda
)

// Trade is a single brokerage-note line: one security bought or sold on one
// day. Trades are immutable once parsed and are processed in date order.
type Trade struct {
	Date       Date            `json:"date"`
	Broker     string          `json:"broker"`
	Side       Side            `json:"side"`
	MarketType string          `json:"market_type"`
	Expiration Date            `json:"expiration,omitempty"` // options only
	Spec       string          `json:"security_spec"`
	Ticker     string          `json:"ticker"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
}

// IsOption reports whether the trade is on the options market.
func (t Trade) IsOption() bool { return strings.Contains(t.MarketType, "OPCAO") }

// Validate checks the fields the ledger relies on.
func (t Trade) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("trade has no date")
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("invalid trade side %q", t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("invalid trade quantity %d", t.Quantity)
	}
	if t.IsOption() && t.Expiration.IsZero() {
		return fmt.Errorf("option trade has no expiration")
	}
	return nil
}

// SortTrades orders trades ascending by date, keeping the original relative
// order of same-day trades.
func SortTrades(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Date.Before(trades[j].Date)
	})
}
