package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string { return "prices" }
func (*pricesCmd) Synopsis() string {
	return "download the price history of every traded ticker"
}
func (*pricesCmd) Usage() string {
	return `stk prices

  Brings the per-ticker price history cache up to cover the holding ranges,
  fetching only the days not already cached. Requests are paced and retried;
  a ticker already covered costs no request at all.

`
}
func (*pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := runPrices(cfg, openStore(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runPrices(cfg stonks.Config, store *stonks.Store) error {
	ranges, ok, err := store.LoadRanges()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "ranges" not found, run "stk positions" first`)
	}
	source := stonks.NewAdvfnSource(cfg)
	return stonks.UpdateHistories(ranges, store, source, cfg.DaysPerPage)
}
