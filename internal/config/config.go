package config

import (
	"os"
	"time"
)

const (
	defaultBaseURL      = "http://127.0.0.1:5001"
	defaultDatabasePath = "medagent.db"
	defaultHTTPTimeout  = time.Second * 120
)

// Config holds the runtime settings for the client.
type Config struct {
	BaseURL      string
	DatabasePath string
	HTTPTimeout  time.Duration
}

// NewConfig builds a Config from the environment, falling back to defaults.
func NewConfig() *Config {
	cfg := &Config{
		BaseURL:      defaultBaseURL,
		DatabasePath: defaultDatabasePath,
		HTTPTimeout:  defaultHTTPTimeout,
	}
	if v := os.Getenv("MEDAGENT_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MEDAGENT_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	return cfg
}
