package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config aggregates everything the server needs to run.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Addr      string        `mapstructure:"addr"`
	RateLimit time.Duration `mapstructure:"rate_limit"`
}

type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// DatabaseConfig selects the transaction-log backend: Postgres via DSN, or
// process memory when InMemory is set.
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	InMemory bool   `mapstructure:"in_memory"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ProviderConfig seeds one simulated provider at startup.
type ProviderConfig struct {
	Name       string            `mapstructure:"name"`
	Directions []DirectionConfig `mapstructure:"directions"`
}

// DirectionConfig declares one generated direction: the nominal rate and the
// overall tradable amount in the source asset.
type DirectionConfig struct {
	SourceAsset   string  `mapstructure:"source_asset"`
	DestAsset     string  `mapstructure:"dest_asset"`
	Rate          float64 `mapstructure:"rate"`
	OverallAmount float64 `mapstructure:"overall_amount"`
}

// Validate accumulates configuration problems instead of stopping at the
// first one.
func (c *Config) Validate() error {
	var err error
	if c.Server.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("server.addr must not be empty"))
	}
	if !c.Database.InMemory && c.Database.DSN == "" {
		err = multierr.Append(err, fmt.Errorf("database.dsn is required unless database.in_memory is set"))
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("cache.addr is required when cache.enabled is set"))
	}
	seen := make(map[string]bool)
	for _, p := range c.Providers {
		if p.Name == "" {
			err = multierr.Append(err, fmt.Errorf("providers: name must not be empty"))
			continue
		}
		if seen[p.Name] {
			err = multierr.Append(err, fmt.Errorf("providers: duplicate name %q", p.Name))
		}
		seen[p.Name] = true
		for _, d := range p.Directions {
			if d.SourceAsset == "" || d.DestAsset == "" {
				err = multierr.Append(err, fmt.Errorf("provider %q: direction assets must not be empty", p.Name))
			}
			if d.Rate <= 0 {
				err = multierr.Append(err, fmt.Errorf("provider %q: direction rate must be positive", p.Name))
			}
			if d.OverallAmount <= 0 {
				err = multierr.Append(err, fmt.Errorf("provider %q: direction overall_amount must be positive", p.Name))
			}
		}
	}
	return err
}
