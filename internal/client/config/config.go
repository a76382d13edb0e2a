package config

import "time"

// Config holds runtime settings for the aceletters CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including any path
//     prefix (e.g. http://127.0.0.1:8000/api).
//   - StateDBPath: path of the local SQLite file holding the session.
//   - RequestTimeout: per-request deadline for API calls.
type Config struct {
	APIBaseURL     string
	StateDBPath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.StateDBPath = "aceletters.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
