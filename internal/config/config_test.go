package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 8085 {
		t.Errorf("Port = %d, want 8085", cfg.App.Port)
	}
	if cfg.TVDB.BaseURL != "https://api4.thetvdb.com/v4" {
		t.Errorf("BaseURL = %q", cfg.TVDB.BaseURL)
	}
	if cfg.TVDB.Language != "eng" {
		t.Errorf("Language = %q", cfg.TVDB.Language)
	}
	if cfg.Provider.Country != "US" {
		t.Errorf("Country = %q", cfg.Provider.Country)
	}
	if cfg.Provider.Identifier != "tv.tvbridge.thetvdb" {
		t.Errorf("Identifier = %q", cfg.Provider.Identifier)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
app:
  port: 9000
  debug: true
tvdb:
  api_key: file-key
  language: spa
provider:
  country: ES
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 9000 || !cfg.App.Debug {
		t.Errorf("App = %+v", cfg.App)
	}
	if cfg.TVDB.APIKey != "file-key" || cfg.TVDB.Language != "spa" {
		t.Errorf("TVDB = %+v", cfg.TVDB)
	}
	if cfg.Provider.Country != "ES" {
		t.Errorf("Country = %q", cfg.Provider.Country)
	}
	// Untouched keys keep their defaults.
	if cfg.TVDB.BaseURL != "https://api4.thetvdb.com/v4" {
		t.Errorf("BaseURL = %q", cfg.TVDB.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TVDB_API_KEY", "env-key")
	t.Setenv("TVBRIDGE_PORT", "9999")
	t.Setenv("TVBRIDGE_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TVDB.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.TVDB.APIKey)
	}
	if cfg.App.Port != 9999 || !cfg.App.Debug {
		t.Errorf("App = %+v", cfg.App)
	}
}

func TestSnapshotSwap(t *testing.T) {
	first := &Config{}
	first.App.Port = 1
	snap := NewSnapshot(first)
	if snap.Get().App.Port != 1 {
		t.Fatalf("Get = %+v", snap.Get().App)
	}

	second := &Config{}
	second.App.Port = 2
	snap.Set(second)
	if snap.Get().App.Port != 2 {
		t.Errorf("Get after Set = %+v", snap.Get().App)
	}
}
