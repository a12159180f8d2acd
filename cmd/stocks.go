package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
)

type stocksCmd struct{}

func (*stocksCmd) Name() string { return "stocks" }
func (*stocksCmd) Synopsis() string {
	return "download the exchange's company directory and build the stock list"
}
func (*stocksCmd) Usage() string {
	return `stk stocks

  Downloads the listed-company directory from the exchange and derives the
  stock list (one entry per ticker) used to resolve trade specifications.
  Both artifacts are cached: an existing stocks artifact skips the download.

`
}
func (*stocksCmd) SetFlags(f *flag.FlagSet) {}

func (c *stocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if _, err := runStocks(cfg, openStore(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// runStocks returns the stock list, building and saving it when absent.
func runStocks(cfg stonks.Config, store *stonks.Store) ([]stonks.Stock, error) {
	stocks, ok, err := store.LoadStocks()
	if err != nil {
		return nil, err
	}
	if ok {
		return stocks, nil
	}

	companies, ok, err := store.LoadCompanies()
	if err != nil {
		return nil, err
	}
	if !ok {
		companies, err = stonks.NewB3Directory(cfg).Companies()
		if err != nil {
			return nil, err
		}
		if err := store.SaveCompanies(companies); err != nil {
			return nil, err
		}
	}

	stocks = stonks.StocksOf(companies)
	if err := store.SaveStocks(stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}
