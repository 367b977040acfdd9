// Package config provides configuration management for stackmap.
//
// Config file locations (priority order):
//  1. $STACKMAP_CONFIG
//  2. ./stackmap.yaml
//  3. $XDG_CONFIG_HOME/stackmap/config.yaml
//  4. ~/.config/stackmap/config.yaml
//  5. /etc/stackmap/config.yaml
//
// A .env file in the working directory is loaded first, then STACKMAP_*
// environment variables override values from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stackmap/internal/domain"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied and the result is validated.
func Load() (*Config, string, error) {
	return LoadExplicit("")
}

// LoadExplicit is Load with a config file chosen by the caller. An empty path
// searches the usual locations.
func LoadExplicit(path string) (*Config, string, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, "", err
	}

	if path == "" {
		path = FindConfigPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, _, err := LoadFromPath(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "./stackmap.db"
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "localhost:6379"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "stackmap:"
	}
	if c.Catalog.Debounce == 0 {
		c.Catalog.Debounce = Duration(500 * time.Millisecond)
	}
	if c.View.Layout == "" {
		c.View.Layout = string(domain.LayoutCube)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	case BackendPostgres:
		if c.Storage.Postgres.DSN == "" {
			errs = append(errs, errors.New("storage.postgres.dsn is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	if !domain.LayoutMode(c.View.Layout).Valid() {
		errs = append(errs, fmt.Errorf("unknown view layout %q", c.View.Layout))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.Catalog.Watch && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.watch requires catalog.path"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Storage: %s", c.Server.Addr, c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendSQLite:
		summary += fmt.Sprintf(" (%s)", c.Storage.SQLite.Path)
	case BackendRedis:
		summary += fmt.Sprintf(" (%s db %d)", c.Storage.Redis.Addr, c.Storage.Redis.DB)
	}
	if c.Catalog.Path != "" {
		summary += fmt.Sprintf(", Catalog: %s", c.Catalog.Path)
		if c.Catalog.Watch {
			summary += " (watched)"
		}
	} else {
		summary += ", Catalog: built-in"
	}
	summary += fmt.Sprintf(", Layout: %s", c.View.Layout)
	return summary
}
