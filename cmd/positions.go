package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "replay the trades into the position history"
}
func (*positionsCmd) Usage() string {
	return `stk positions

  Replays the imported trades into the sparse position history, resolving
  option expirations along the way, and derives the date ranges each ticker
  spent in the wallet. Saves the positions and ranges artifacts.

`
}
func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := runPositions(openStore(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runPositions(store *stonks.Store) error {
	tickers, ok, err := store.LoadTickers()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "tickers" not found, run "stk import" first`)
	}
	trades, ok, err := store.LoadTrades()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "trades" not found, run "stk import" first`)
	}

	stonks.SortTrades(trades)
	positions := stonks.CalculatePositions(trades, stonks.Today())
	ranges := stonks.HoldingRanges(positions)

	if err := store.SavePositions(positions, tickers); err != nil {
		return err
	}
	return store.SaveRanges(ranges)
}
