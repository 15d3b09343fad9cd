package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}
	if cfg.Data.CSV != "gt.csv" {
		t.Errorf("expected default csv path, got %q", cfg.Data.CSV)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Advisory.TimeoutSeconds != 15 {
		t.Errorf("expected default advisory timeout 15, got %d", cfg.Advisory.TimeoutSeconds)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[data]
csv = "/srv/data/incidents.csv"

[server]
port = 9090

[advisory]
model = "claude-haiku-4"
requests_per_minute = 5.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Data.CSV != "/srv/data/incidents.csv" {
		t.Errorf("csv not overridden: %q", cfg.Data.CSV)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port not overridden: %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("unset host should keep default, got %q", cfg.Server.Host)
	}
	if cfg.Advisory.Model != "claude-haiku-4" {
		t.Errorf("advisory model not overridden: %q", cfg.Advisory.Model)
	}
	if cfg.Advisory.RequestsPerMinute != 5.0 {
		t.Errorf("requests_per_minute not overridden: %v", cfg.Advisory.RequestsPerMinute)
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[data\ncsv="), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
