package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// ServerConfig holds MCP server identity.
type ServerConfig struct {
	Name    string `envconfig:"SERVER_NAME" default:"devtools-mcp"`
	Version string `envconfig:"SERVER_VERSION" default:"0.1.0"`
}

// BrowserConfig locates the browser's remote-debugging endpoint.
type BrowserConfig struct {
	Host string `envconfig:"CDP_HOST" default:"localhost"`
	Port int    `envconfig:"CDP_PORT" default:"9222"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds the optional Prometheus listener. Empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "devtools-mcp",
			Version: "0.1.0",
		},
		Browser: BrowserConfig{
			Host: "localhost",
			Port: 9222,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.Browser.Host == "" {
		return fmt.Errorf("invalid config: CDP_HOST must not be empty")
	}
	if c.Browser.Port < 1 || c.Browser.Port > 65535 {
		return fmt.Errorf("invalid config: CDP_PORT %d out of range 1-65535", c.Browser.Port)
	}
	return nil
}
