package stonks

import (
	"sort"
	"strings"
)

// Company is one entry of the exchange's listed-company directory.
type Company struct {
	Name    string   `json:"name"`
	CVMCode string   `json:"cvm_code"`
	CNPJ    string   `json:"cnpj"`
	Segment string   `json:"segment"`
	Tickers []string `json:"tickers"`
}

// Stock is a single tradable security, one per ticker of a company.
type Stock struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Segment string `json:"segment"`
	Ticker  string `json:"ticker"`
}

// Tax holds the fee and tax totals of one brokerage note. Taxes are kept as an
// artifact for bookkeeping; the valuation pipeline does not consume them.
type Tax struct {
	Date         Date   `json:"date"`
	Broker       string `json:"broker"`
	Liquidation  Value  `json:"liquidation_fee"`
	Registration Value  `json:"registration_fee"`
	Emoluments   Value  `json:"emoluments"`
	Brokerage    Value  `json:"brokerage_fee"`
	ISS          Value  `json:"iss"`
	IRRF         Value  `json:"irrf"`
	Total        Value  `json:"total"`
	NetAmount    Value  `json:"net_amount"`
}

// stockTypes maps the numeric suffix of a ticker to the security type.
var stockTypes = map[string]string{
	"1":  "ON DIR",
	"2":  "PN DIR",
	"3":  "ON",
	"4":  "PN",
	"5":  "PNA",
	"6":  "PNB",
	"7":  "PNC",
	"8":  "PND",
	"9":  "ON REC",
	"10": "PN REC",
	"11": "UNT",
}

// StockType returns the security type encoded in the ticker's numeric suffix.
// A trailing "B" (fractional market) is ignored. Unknown suffixes map to "".
func StockType(ticker string) string {
	if len(ticker) < 5 {
		return ""
	}
	suffix := strings.TrimSuffix(ticker[4:], "B")
	return stockTypes[suffix]
}

// StocksOf explodes the company directory into one Stock per ticker, sorted by
// name, then descending type, then ticker.
func StocksOf(companies []Company) []Stock {
	var stocks []Stock
	for _, company := range companies {
		for _, ticker := range company.Tickers {
			stocks = append(stocks, Stock{
				Name:    company.Name,
				Type:    StockType(ticker),
				Segment: company.Segment,
				Ticker:  ticker,
			})
		}
	}
	sort.Slice(stocks, func(i, j int) bool {
		a, b := stocks[i], stocks[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Type != b.Type {
			return a.Type > b.Type
		}
		return a.Ticker < b.Ticker
	})
	return stocks
}

// ResolveTickers fills in the Ticker of every trade and returns the distinct
// tickers used, in first-seen order.
//
// Option trades get a synthetic ticker, "<series> mm/yy" of the expiration,
// since exchange option series are reused across months. Everything else is
// matched by prefix against "<name> <type>" of the stock directory. Resolution
// is memoized per security spec within the call.
func ResolveTickers(trades []Trade, stocks []Stock) []string {
	memo := make(map[string]string)
	var tickers []string
	for i := range trades {
		trade := &trades[i]
		if ticker, ok := memo[trade.Spec]; ok {
			trade.Ticker = ticker
			continue
		}
		if trade.IsOption() {
			series, _, _ := strings.Cut(trade.Spec, " ")
			trade.Ticker = series + " " + trade.Expiration.Short()[3:]
		} else {
			for _, stock := range stocks {
				if strings.HasPrefix(trade.Spec, stock.Name+" "+stock.Type) {
					trade.Ticker = stock.Ticker
					break
				}
			}
		}
		memo[trade.Spec] = trade.Ticker
		tickers = append(tickers, trade.Ticker)
	}
	return tickers
}
