// Package config loads the metabox command configuration from an optional
// YAML file with METABOX_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers understood by internal/stores.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the command configuration.
type Config struct {
	Addr        string `yaml:"addr" env:"METABOX_ADDR" env-default:":8080"`
	Definitions string `yaml:"definitions" env:"METABOX_DEFINITIONS"`
	// MediaURLPattern resolves image attachment ids; see storage.URLPattern.
	MediaURLPattern string      `yaml:"media_url_pattern" env:"METABOX_MEDIA_URL_PATTERN"`
	LogLevel        string      `yaml:"log_level" env:"METABOX_LOG_LEVEL" env-default:"info"`
	// Templates is a directory whose .tpl files replace the built-in ones.
	Templates string      `yaml:"templates" env:"METABOX_TEMPLATES"`
	Store     StoreConfig `yaml:"store"`
}

// StoreConfig selects and configures the storage backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" env:"METABOX_STORE_DRIVER" env-default:"memory"`
	DSN         string `yaml:"dsn" env:"METABOX_STORE_DSN"`
	Path        string `yaml:"path" env:"METABOX_STORE_PATH"`
	RedisAddr   string `yaml:"redis_addr" env:"METABOX_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPrefix string `yaml:"redis_prefix" env:"METABOX_REDIS_PREFIX" env-default:"metabox"`
}

// Load reads path (when set) and the environment, then validates the result.
// Environment variables win over file values.
func Load(path string) (Config, error) {
	var cfg Config
	var err error
	if strings.TrimSpace(path) != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store driver has what it needs.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile, DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			errs = append(errs, fmt.Errorf("store driver %q requires a path", c.Store.Driver))
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, errors.New("store driver \"postgres\" requires a dsn"))
		}
	case DriverRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			errs = append(errs, errors.New("store driver \"redis\" requires redis_addr"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel. An empty level is info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
