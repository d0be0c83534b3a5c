package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for teamstalk.
type Config struct {
	Scrape  ScrapeConfig  `mapstructure:"scrape"  yaml:"scrape"`
	Filters FilterConfig  `mapstructure:"filters" yaml:"filters"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Mongo   MongoConfig   `mapstructure:"mongo"   yaml:"mongo"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ScrapeConfig controls pacing and the entry point of the scrape.
type ScrapeConfig struct {
	CategoriesURL     string        `mapstructure:"categories_url"     yaml:"categories_url"`
	Delay             time.Duration `mapstructure:"delay"              yaml:"delay"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
}

// FilterConfig selects which slice of the results service to scrape.
// Values are the `value` attributes of the category page filter buttons;
// an empty value leaves that filter untouched.
type FilterConfig struct {
	Sport    string `mapstructure:"sport"     yaml:"sport"`
	Region   string `mapstructure:"region"    yaml:"region"`
	Division string `mapstructure:"division"  yaml:"division"`
	AgeGroup string `mapstructure:"age_group" yaml:"age_group"`
}

// Values returns the non-empty filter button values in click order.
func (f FilterConfig) Values() []string {
	var vals []string
	for _, v := range []string{f.Sport, f.Region, f.Division, f.AgeGroup} {
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// BrowserConfig controls the headless browser session.
type BrowserConfig struct {
	Headless   bool   `mapstructure:"headless"    yaml:"headless"`
	WindowSize string `mapstructure:"window_size" yaml:"window_size"`
	Stealth    bool   `mapstructure:"stealth"     yaml:"stealth"`
}

// FetcherConfig controls how the teams and contact stages load pages.
// Type "browser" reuses the shared browser session; "http" fetches the
// server-rendered pages directly with net/http.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"              yaml:"type"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	UserAgents      []string      `mapstructure:"user_agents"       yaml:"user_agents"`
}

// OutputConfig holds the per-stage output paths and the checkpoint file.
type OutputConfig struct {
	LeaguesFile    string `mapstructure:"leagues_file"    yaml:"leagues_file"`
	TeamsFile      string `mapstructure:"teams_file"      yaml:"teams_file"`
	ContactsFile   string `mapstructure:"contacts_file"   yaml:"contacts_file"`
	CheckpointFile string `mapstructure:"checkpoint_file" yaml:"checkpoint_file"`
}

// StageOutput returns the output path for a stage name.
func (o OutputConfig) StageOutput(stage string) string {
	switch stage {
	case "categories":
		return o.LeaguesFile
	case "teams":
		return o.TeamsFile
	case "contacts":
		return o.ContactsFile
	}
	return ""
}

// MongoConfig controls the optional export of final contacts to MongoDB.
type MongoConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scrape: ScrapeConfig{
			CategoriesURL:     "https://tulospalvelu.palloliitto.fi/categories",
			Delay:             2 * time.Second,
			NavigationTimeout: 20 * time.Second,
		},
		Filters: FilterConfig{
			Sport:    "football",
			Region:   "spletela",
			Division: "league",
			AgeGroup: "B",
		},
		Browser: BrowserConfig{
			Headless:   true,
			WindowSize: "1920,1080",
			Stealth:    false,
		},
		Fetcher: FetcherConfig{
			Type:            "browser",
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    10,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Output: OutputConfig{
			LeaguesFile:    "data/intermediate/leagues.json",
			TeamsFile:      "data/intermediate/teams.json",
			ContactsFile:   "data/contacts.csv",
			CheckpointFile: "data/intermediate/checkpoints.json",
		},
		Mongo: MongoConfig{
			Enabled:    false,
			URI:        "mongodb://localhost:27017",
			Database:   "teamstalk",
			Collection: "contacts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
