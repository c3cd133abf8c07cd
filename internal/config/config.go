// Package config provides configuration loading for resolvd.
//
// Configuration is read from a YAML file with environment variable
// overrides. Defaults are applied for anything unset; the result is
// validated before use.
package config

import (
	"fmt"
	"time"
)

// Config holds the complete resolvd configuration.
type Config struct {
	Store    StoreConfig    `koanf:"store"`
	Resolver ResolverConfig `koanf:"resolver"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// StoreConfig selects and configures the record store adapter.
type StoreConfig struct {
	// Driver selects the adapter: "odoo" (default) or "sqlite".
	Driver string `koanf:"driver"`

	// Odoo connection settings (driver: odoo).
	URL      string `koanf:"url"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password Secret `koanf:"password"`

	// Path is the database file path (driver: sqlite).
	Path string `koanf:"path"`

	// QueryTimeout bounds each query round trip. Zero disables the bound.
	QueryTimeout Duration `koanf:"query_timeout"`

	// RateLimit throttles queries per second. Zero disables throttling.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the throttle burst size.
	RateBurst int `koanf:"rate_burst"`
}

// ResolverConfig tunes the resolution core.
type ResolverConfig struct {
	// FetchLimit bounds the result count of every store query.
	FetchLimit int `koanf:"fetch_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// applyDefaults fills in defaults for unset values.
func applyDefaults(cfg *Config) {
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "odoo"
	}
	if cfg.Store.QueryTimeout == 0 {
		cfg.Store.QueryTimeout = Duration(15 * time.Second)
	}
	if cfg.Store.RateBurst == 0 {
		cfg.Store.RateBurst = 5
	}
	if cfg.Resolver.FetchLimit == 0 {
		cfg.Resolver.FetchLimit = 100
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9191
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "odoo":
		if c.Store.URL == "" {
			return fmt.Errorf("store.url is required for the odoo driver")
		}
		if c.Store.Database == "" {
			return fmt.Errorf("store.database is required for the odoo driver")
		}
		if c.Store.Username == "" || !c.Store.Password.IsSet() {
			return fmt.Errorf("store.username and store.password are required for the odoo driver")
		}
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q (want odoo or sqlite)", c.Store.Driver)
	}

	if c.Resolver.FetchLimit < 1 {
		return fmt.Errorf("resolver.fetch_limit must be positive, got %d", c.Resolver.FetchLimit)
	}
	if c.Store.RateLimit < 0 {
		return fmt.Errorf("store.rate_limit cannot be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}

	return nil
}
