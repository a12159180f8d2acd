package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
	"github.com/shopspring/decimal"
)

type importCmd struct {
	tradesFile string
	taxesFile  string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import brokerage-note trades (and optionally taxes) from CSV"
}
func (*importCmd) Usage() string {
	return `stk import -trades <file.csv> [-taxes <file.csv>]

  Ingests the trades exported from brokerage-note tooling, resolves each
  trade's ticker against the stock directory, and saves the trades, taxes and
  tickers artifacts. Requires the stocks artifact (run "stk stocks" first).

  The trades CSV columns are: date (dd/mm/yyyy), broker, side (C/V), market
  type, expiration (dd/mm/yyyy, options only), security spec, quantity, price,
  amount. The taxes CSV columns are: date, broker, liquidation fee,
  registration fee, emoluments, brokerage fee, iss, irrf, total, net amount.
  Both files carry a header row.

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tradesFile, "trades", "", "trades CSV file to import")
	f.StringVar(&c.taxesFile, "taxes", "", "taxes CSV file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tradesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -trades is required")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	store := openStore(cfg)

	stocks, ok, err := store.LoadStocks()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Fprintln(os.Stderr, `Error: artifact "stocks" not found, run "stk stocks" first`)
		return subcommands.ExitFailure
	}

	trades, err := readTradesCSV(c.tradesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	stonks.SortTrades(trades)
	tickers := stonks.ResolveTickers(trades, stocks)

	if err := store.SaveTrades(trades); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := store.SaveTickers(tickers); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.taxesFile != "" {
		taxes, err := readTaxesCSV(c.taxesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if err := store.SaveTaxes(taxes); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// readCSV loads all rows of a CSV file, skipping the header.
func readCSV(path string, columns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return rows[1:], nil
}

func readTradesCSV(path string) ([]stonks.Trade, error) {
	rows, err := readCSV(path, 9)
	if err != nil {
		return nil, err
	}
	trades := make([]stonks.Trade, 0, len(rows))
	for i, row := range rows {
		trade, err := parseTradeRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s, line %d: %w", path, i+2, err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func parseTradeRow(row []string) (stonks.Trade, error) {
	var trade stonks.Trade
	var err error
	if trade.Date, err = stonks.ParseDate(row[0]); err != nil {
		return trade, err
	}
	trade.Broker = row[1]
	trade.Side = stonks.Side(row[2])
	trade.MarketType = row[3]
	if row[4] != "" {
		if trade.Expiration, err = stonks.ParseDate(row[4]); err != nil {
			return trade, err
		}
	}
	trade.Spec = row[5]
	if trade.Quantity, err = strconv.ParseInt(row[6], 10, 64); err != nil {
		return trade, fmt.Errorf("invalid quantity %q", row[6])
	}
	if trade.Price, err = decimal.NewFromString(row[7]); err != nil {
		return trade, fmt.Errorf("invalid price %q", row[7])
	}
	if trade.Amount, err = decimal.NewFromString(row[8]); err != nil {
		return trade, fmt.Errorf("invalid amount %q", row[8])
	}
	return trade, trade.Validate()
}

func readTaxesCSV(path string) ([]stonks.Tax, error) {
	rows, err := readCSV(path, 10)
	if err != nil {
		return nil, err
	}
	taxes := make([]stonks.Tax, 0, len(rows))
	for i, row := range rows {
		tax, err := parseTaxRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s, line %d: %w", path, i+2, err)
		}
		taxes = append(taxes, tax)
	}
	return taxes, nil
}

func parseTaxRow(row []string) (stonks.Tax, error) {
	var tax stonks.Tax
	var err error
	if tax.Date, err = stonks.ParseDate(row[0]); err != nil {
		return tax, err
	}
	tax.Broker = row[1]
	fields := []struct {
		name string
		dst  *stonks.Value
	}{
		{"liquidation fee", &tax.Liquidation},
		{"registration fee", &tax.Registration},
		{"emoluments", &tax.Emoluments},
		{"brokerage fee", &tax.Brokerage},
		{"iss", &tax.ISS},
		{"irrf", &tax.IRRF},
		{"total", &tax.Total},
		{"net amount", &tax.NetAmount},
	}
	for i, f := range fields {
		d, err := decimal.NewFromString(row[i+2])
		if err != nil {
			return tax, fmt.Errorf("invalid %s %q", f.name, row[i+2])
		}
		*f.dst = stonks.V(d)
	}
	return tax, nil
}
