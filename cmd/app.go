// Package cmd implements the CLI application driving the pipeline.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/rgusmao/stonks"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&stocksCmd{}, "pipeline")
	c.Register(&importCmd{}, "pipeline")
	c.Register(&positionsCmd{}, "pipeline")
	c.Register(&pricesCmd{}, "pipeline")
	c.Register(&portfolioCmd{}, "pipeline")
	c.Register(&runCmd{}, "pipeline")

	c.Register(&statusCmd{}, "reports")
}

// The application is short lived, shared state can live in flags and globals.

var configPath = flag.String("config", "stonks.yaml", "path to the YAML configuration file")
var storageDir = flag.String("storage", "", "artifact storage directory, overrides the configuration")

// loadConfig reads the config file and applies the command line overrides.
func loadConfig() (stonks.Config, error) {
	cfg, err := stonks.LoadConfig(*configPath)
	if err != nil {
		return cfg, err
	}
	if *storageDir != "" {
		cfg.StorageDir = *storageDir
	}
	return cfg, nil
}

// openStore opens the artifact store of the config.
func openStore(cfg stonks.Config) *stonks.Store {
	return stonks.NewStore(cfg.StorageDir)
}
