package stonks

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "stonks.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stonks.yaml")
	content := "storage_dir: /tmp/wallet\nfetch_delay: 2s\ndays_per_page: 40\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StorageDir != "/tmp/wallet" {
		t.Errorf("storage_dir = %q", cfg.StorageDir)
	}
	if cfg.Delay() != 2*time.Second {
		t.Errorf("fetch_delay = %s", cfg.FetchDelay)
	}
	if cfg.DaysPerPage != 40 {
		t.Errorf("days_per_page = %d", cfg.DaysPerPage)
	}
	// Untouched fields keep their defaults.
	if cfg.RetryCount != DefaultConfig().RetryCount {
		t.Errorf("retry_count = %d", cfg.RetryCount)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stonks.yaml")
	if err := os.WriteFile(path, []byte("days_per_page: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("negative days_per_page should fail validation")
	}
}
