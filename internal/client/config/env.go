package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; a missing file is not
// an error. Malformed numeric values are ignored, keeping the previous
// layer's value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TEMPEST_SERVER_ADDR"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv("TEMPEST_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("TEMPEST_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.IdleTimeout = d
		}
	}
	if v := os.Getenv("TEMPEST_IDLE_COUNTDOWN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IdleCountdownSecs = n
		}
	}
	if v := os.Getenv("TEMPEST_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
}
