// config.go loads server configuration from the environment and, for
// HTTP sessions, from a base64 config blob in the query string.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs. All fields come from the
// environment; the -transport and -addr flags may override the
// transport fields after parsing.
type Config struct {
	APIKey  string `env:"FREEPIK_API_KEY"`
	BaseURL string `env:"FREEPIK_BASE_URL" envDefault:"https://api.freepik.com"`

	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"MCP_HTTP_ADDR" envDefault:"localhost:8080"`

	// Poll cadence for wait_for_result. The legacy mystic engine is
	// slower to reject hopeless jobs, so it gets its own budget.
	PollInterval      time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	PollMaxAttempts   int           `env:"POLL_MAX_ATTEMPTS" envDefault:"60"`
	MysticMaxAttempts int           `env:"MYSTIC_POLL_MAX_ATTEMPTS" envDefault:"45"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// sessionConfig is the JSON document clients may pass base64-encoded in
// the config query parameter when opening an HTTP session.
type sessionConfig struct {
	APIKey string `json:"apiKey"`
}

// decodeSessionConfig decodes a config query parameter. An empty value
// is not an error; it means the environment key applies.
func decodeSessionConfig(blob string) (sessionConfig, error) {
	var sc sessionConfig
	if blob == "" {
		return sc, nil
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		// Some clients use the URL-safe alphabet.
		raw, err = base64.URLEncoding.DecodeString(blob)
		if err != nil {
			return sc, fmt.Errorf("decode config parameter: %w", err)
		}
	}
	if err := json.Unmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("parse config parameter: %w", err)
	}
	return sc, nil
}
