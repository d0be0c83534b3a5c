package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad categories URL", func(c *Config) { c.Scrape.CategoriesURL = "not a url" }},
		{"file scheme", func(c *Config) { c.Scrape.CategoriesURL = "file:///etc/passwd" }},
		{"negative delay", func(c *Config) { c.Scrape.Delay = -time.Second }},
		{"zero nav timeout", func(c *Config) { c.Scrape.NavigationTimeout = 0 }},
		{"unknown fetcher type", func(c *Config) { c.Fetcher.Type = "carrier-pigeon" }},
		{"zero body size", func(c *Config) { c.Fetcher.MaxBodySize = 0 }},
		{"empty contacts file", func(c *Config) { c.Output.ContactsFile = "" }},
		{"empty checkpoint file", func(c *Config) { c.Output.CheckpointFile = "" }},
		{"mongo enabled without uri", func(c *Config) { c.Mongo.Enabled = true; c.Mongo.URI = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestFilterValues(t *testing.T) {
	f := FilterConfig{Sport: "football", Region: "spletela", Division: "league", AgeGroup: "B"}
	want := []string{"football", "spletela", "league", "B"}
	got := f.Values()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("click order wrong: got %v, want %v", got, want)
		}
	}

	// Empty filters drop out without disturbing the order.
	f.Region = ""
	got = f.Values()
	if len(got) != 3 || got[1] != "league" {
		t.Fatalf("got %v, want [football league B]", got)
	}
}

func TestStageOutput(t *testing.T) {
	out := OutputConfig{
		LeaguesFile:  "a.json",
		TeamsFile:    "b.json",
		ContactsFile: "c.csv",
	}
	if out.StageOutput("categories") != "a.json" ||
		out.StageOutput("teams") != "b.json" ||
		out.StageOutput("contacts") != "c.csv" {
		t.Errorf("stage outputs misrouted")
	}
	if out.StageOutput("nonsense") != "" {
		t.Errorf("unknown stage should map to empty path")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teamstalk.yaml")
	yaml := `
scrape:
  delay: 5s
filters:
  age_group: C
fetcher:
  type: http
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scrape.Delay != 5*time.Second {
		t.Errorf("delay: got %s, want 5s", cfg.Scrape.Delay)
	}
	if cfg.Filters.AgeGroup != "C" {
		t.Errorf("age group: got %q, want C", cfg.Filters.AgeGroup)
	}
	if cfg.Fetcher.Type != "http" {
		t.Errorf("fetcher type: got %q, want http", cfg.Fetcher.Type)
	}
	// Untouched keys keep their defaults.
	if cfg.Scrape.CategoriesURL != DefaultConfig().Scrape.CategoriesURL {
		t.Errorf("categories URL default lost: %q", cfg.Scrape.CategoriesURL)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("explicitly named config file must exist")
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load without file: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("config from defaults rejected: %v", err)
	}
}
