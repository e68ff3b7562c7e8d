package config

import (
	"encoding/json"
	"os"

	"github.com/tempestapp/tempest-cli/internal/flagx"
	"github.com/tempestapp/tempest-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "5m" or
// as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	IdleTimeout        timex.Duration `json:"idle_timeout"`
	IdleCountdownSecs  int            `json:"idle_countdown_secs"`
	DatabasePath       string         `json:"database_path"`
}

// parseJson overlays Config with values from the file given via -c/-config.
// Missing flag means no JSON is loaded. Zero values in the file leave the
// corresponding Config field untouched. Read or unmarshal errors panic:
// an explicitly requested config file must be usable.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.IdleTimeout.Duration > 0 {
		cfg.IdleTimeout = jc.IdleTimeout.Duration
	}
	if jc.IdleCountdownSecs > 0 {
		cfg.IdleCountdownSecs = jc.IdleCountdownSecs
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
