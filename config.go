package stonks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the pipeline. All fields have working
// defaults; a config file only needs the values it overrides.
type Config struct {
	// StorageDir is the root of the artifact store.
	StorageDir string `yaml:"storage_dir"`

	// DaysPerPage is roughly how many days one page of the historical price
	// endpoint spans. It doubles as the gap tolerance when compacting ranges:
	// merging two ranges closer than a page costs no extra request.
	DaysPerPage int `yaml:"days_per_page"`

	// FetchDelay is the pause between consecutive requests to the price
	// source, to stay under its rate limits. A duration string, e.g. "10s".
	FetchDelay string `yaml:"fetch_delay"`

	// RetryCount is how many times a failed request is retried before the
	// run aborts.
	RetryCount int `yaml:"retry_count"`

	// HistoricalURL is the base URL of the daily price endpoint.
	HistoricalURL string `yaml:"historical_url"`

	// CompaniesURL is the base URL of the listed-company directory endpoint.
	CompaniesURL string `yaml:"companies_url"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		StorageDir:    "storage",
		DaysPerPage:   80,
		FetchDelay:    "10s",
		RetryCount:    3,
		HistoricalURL: "https://br.advfn.com/common/search/exchanges/more-historical-data",
		CompaniesURL:  "https://bvmf.bmfbovespa.com.br/cias-listadas/empresas-listadas",
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error: the defaults are returned as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir is required")
	}
	if c.DaysPerPage <= 0 {
		return fmt.Errorf("days_per_page must be positive")
	}
	if _, err := time.ParseDuration(c.FetchDelay); err != nil {
		return fmt.Errorf("invalid fetch_delay %q: %w", c.FetchDelay, err)
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry_count cannot be negative")
	}
	return nil
}

// Delay returns the parsed fetch delay. Validate guarantees it parses.
func (c Config) Delay() time.Duration {
	d, err := time.ParseDuration(c.FetchDelay)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
