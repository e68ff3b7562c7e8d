// Package config assembles runtime settings for the Tempest CLI from
// defaults, a JSON file, environment variables, and command-line flags,
// in that order of precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the Tempest CLI.
type Config struct {
	// ServerEndpointAddr is the base URL of the backend REST API.
	ServerEndpointAddr string
	// RequestTimeout bounds every HTTP request.
	RequestTimeout time.Duration
	// IdleTimeout is the inactivity interval before the session is
	// considered idle.
	IdleTimeout time.Duration
	// IdleCountdownSecs is how many seconds the idle warning counts down
	// before forced logout.
	IdleCountdownSecs int
	// DatabasePath is the local SQLite file holding persisted state.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:9009"
	c.RequestTimeout = 10 * time.Second
	c.IdleTimeout = 5 * time.Minute
	c.IdleCountdownSecs = 5
	c.DatabasePath = "tempest.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
