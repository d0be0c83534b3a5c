package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateURL(cfg.Scrape.CategoriesURL); err != nil {
		return fmt.Errorf("scrape.categories_url: %w", err)
	}
	if cfg.Scrape.Delay < 0 {
		return fmt.Errorf("scrape.delay must be >= 0, got %s", cfg.Scrape.Delay)
	}
	if cfg.Scrape.NavigationTimeout <= 0 {
		return fmt.Errorf("scrape.navigation_timeout must be > 0")
	}

	if cfg.Fetcher.Type != "browser" && cfg.Fetcher.Type != "http" {
		return fmt.Errorf("fetcher.type must be 'browser' or 'http', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	for _, stage := range []struct{ key, path string }{
		{"output.leagues_file", cfg.Output.LeaguesFile},
		{"output.teams_file", cfg.Output.TeamsFile},
		{"output.contacts_file", cfg.Output.ContactsFile},
		{"output.checkpoint_file", cfg.Output.CheckpointFile},
	} {
		if stage.path == "" {
			return fmt.Errorf("%s must not be empty", stage.key)
		}
	}

	if cfg.Mongo.Enabled {
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri must not be empty when mongo.enabled is true")
		}
		if cfg.Mongo.Database == "" || cfg.Mongo.Collection == "" {
			return fmt.Errorf("mongo.database and mongo.collection must not be empty when mongo.enabled is true")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a scrape target.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
