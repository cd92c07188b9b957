// Package config loads the service configuration from environment
// variables via envconfig struct tags.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port            uint16        `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// --- Database ---
	PostgresDSN     string        `envconfig:"PG_DSN" required:"true"`
	PGMaxOpenConns  int           `envconfig:"PG_MAX_OPEN_CONNS" default:"25"`
	PGMaxIdleConns  int           `envconfig:"PG_MAX_IDLE_CONNS" default:"5"`
	PGConnMaxIdle   time.Duration `envconfig:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	PGConnMaxLife   time.Duration `envconfig:"PG_CONN_MAX_LIFETIME" default:"30m"`

	// --- Sessions ---
	// With REDIS_ADDR unset, sessions live in process memory: correct for a
	// single instance only.
	RedisAddr  string        `envconfig:"REDIS_ADDR" default:""`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"5m"`

	// --- Profit control ---
	HouseEdgePercent  int64  `envconfig:"HOUSE_EDGE_PERCENT" default:"5"`
	ProfitRefreshSpec string `envconfig:"PROFIT_REFRESH_SPEC" default:"@every 1m"`
	SessionSweepSpec  string `envconfig:"SESSION_SWEEP_SPEC" default:"@every 1m"`
}

func Load() (*Config, error) {
	cfg := new(Config)

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.HouseEdgePercent < 0 || c.HouseEdgePercent > 100 {
		return fmt.Errorf("HOUSE_EDGE_PERCENT must be within [0, 100]")
	}
	if c.PGMaxOpenConns <= 0 || c.PGMaxIdleConns < 0 {
		return fmt.Errorf("invalid PG_MAX_OPEN_CONNS/PG_MAX_IDLE_CONNS")
	}

	return nil
}
