package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bc-combo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.SearchCap != 100 || cfg.Search.RankLimit != 50 || cfg.Search.MaxComboSize != 5 {
		t.Fatalf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
data:
  combos: other/combos.json
search:
  search_cap: 20
  timeout: 5s
defaults:
  max_units: 3
serve:
  watch: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Data.Combos != "other/combos.json" || cfg.Data.Cats != "data/cats.tsv" {
		t.Fatalf("data = %+v", cfg.Data)
	}
	if cfg.Search.SearchCap != 20 || cfg.Search.RankLimit != 50 {
		t.Fatalf("search = %+v", cfg.Search)
	}
	if cfg.Search.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Search.Timeout)
	}
	if cfg.Defaults.MaxUnits != 3 || cfg.Defaults.Strength != 1 || !cfg.Serve.Watch {
		t.Fatalf("unexpected overlay: %+v", cfg)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Defaults.MaxUnits != 5 {
		t.Fatalf("empty file should keep defaults, got %+v", cfg.Defaults)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "search:\n  search_limit: 3\n",
		"combo size":     "search:\n  max_combo_size: 6\n",
		"max units":      "defaults:\n  max_units: 0\n",
		"negative timer": "search:\n  timeout: -1s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("explicit missing file should fail")
	}
}
