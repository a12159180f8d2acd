package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
	"github.com/rgusmao/stonks/renderer"
)

type statusCmd struct{}

func (*statusCmd) Name() string { return "status" }
func (*statusCmd) Synopsis() string {
	return "show the wallet status: daily, monthly, yearly and total returns"
}
func (*statusCmd) Usage() string {
	return `stk status

  Prints the profit and nominal return of the wallet over the day, the month,
  the year and since the first trade, followed by the wallet composition at
  the last valued day.

`
}
func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := runStatus(openStore(cfg)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func runStatus(store *stonks.Store) error {
	positions, ok, err := store.LoadPositions()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "positions" not found, run "stk positions" first`)
	}
	portfolio, ok, err := store.LoadPortfolio()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(`artifact "portfolio" not found, run "stk portfolio" first`)
	}

	status, err := stonks.BuildStatus(positions, portfolio)
	if err != nil {
		return err
	}
	printMarkdown(renderer.StatusMarkdown(status))
	return nil
}
