package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default server addr, got %q", cfg.Server.Addr)
	}
	if cfg.Server.RateLimit != 100*time.Millisecond {
		t.Errorf("expected default rate limit, got %s", cfg.Server.RateLimit)
	}
	if !cfg.Database.InMemory {
		t.Errorf("expected in-memory database by default")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("file value not applied, level %q", cfg.Logging.Level)
	}
}

func TestLoadParsesProviders(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: alpha
    directions:
      - source_asset: BTC
        dest_asset: USD
        rate: 59000
        overall_amount: 25
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0].Name != "alpha" {
		t.Fatalf("providers not decoded: %+v", cfg.Providers)
	}
	d := cfg.Providers[0].Directions[0]
	if d.SourceAsset != "BTC" || d.Rate != 59000 {
		t.Errorf("direction not decoded: %+v", d)
	}
}

func TestValidateRejectsBadProviders(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: alpha
    directions:
      - source_asset: BTC
        dest_asset: USD
        rate: -1
        overall_amount: 25
  - name: alpha
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "rate must be positive") || !strings.Contains(msg, "duplicate name") {
		t.Errorf("validation error does not accumulate issues: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
