package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string { return "portfolio" }
func (*portfolioCmd) Synopsis() string {
	return "value the wallet for every day since the first trade"
}
func (*portfolioCmd) Usage() string {
	return `stk portfolio

  Values the wallet at the close of every calendar day from the first trade
  through yesterday, using the cached price histories. Days with a missing
  price are valued "?" rather than guessed. Saves the portfolio artifact.

`
}
func (*portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := runPortfolio(openStore(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runPortfolio(store *stonks.Store) error {
	tickers, ok, err := store.LoadTickers()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "tickers" not found, run "stk import" first`)
	}
	positions, ok, err := store.LoadPositions()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "positions" not found, run "stk positions" first`)
	}

	portfolio, err := stonks.CalculatePortfolio(positions, store, stonks.Today())
	if err != nil {
		return err
	}
	return store.SavePortfolio(portfolio, tickers)
}
