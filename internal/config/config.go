// Package config holds the command line tool's configuration: defaults
// from the environment and permission tables from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/SilverFire/flysystem/pkg/flysystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/local"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FLYSYSTEM"

// Config holds the adapter settings of the command line tool.
type Config struct {
	Root        string `envconfig:"ROOT" default:"."`
	Lock        string `envconfig:"LOCK" default:"exclusive"`
	Links       string `envconfig:"LINKS" default:"disallow"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
	Permissions string `envconfig:"PERMISSIONS"`
}

// Load loads configuration from FLYSYSTEM_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		Root:      ".",
		Lock:      "exclusive",
		Links:     "disallow",
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Level returns the parsed log level
func (c *Config) Level() (zerolog.Level, error) {
	level, err := flysystem.LogLevelFromString(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds the logger described by LogLevel and LogFormat, writing to w.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return zerolog.Nop(), err
	}
	format, err := flysystem.ParseLogFormat(c.LogFormat)
	if err != nil {
		return zerolog.Nop(), err
	}
	return flysystem.NewLoggerWithFormat(w, level, format), nil
}

// AdapterOptions translates the configuration into local.Adapter options.
// The permission table file, when set, is loaded here.
func (c *Config) AdapterOptions() ([]local.Option, error) {
	lock, err := core.ParseLockMode(c.Lock)
	if err != nil {
		return nil, err
	}
	links, err := core.ParseLinkHandling(c.Links)
	if err != nil {
		return nil, err
	}

	opts := []local.Option{
		local.WithLockMode(lock),
		local.WithLinkHandling(links),
	}

	if c.Permissions != "" {
		table, err := LoadPermissions(c.Permissions)
		if err != nil {
			return nil, err
		}
		opts = append(opts, local.WithPermissions(table))
	}
	return opts, nil
}

// Validate checks every enumerated setting without touching the disk.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if _, err := core.ParseLockMode(c.Lock); err != nil {
		return err
	}
	if _, err := core.ParseLinkHandling(c.Links); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := flysystem.ParseLogFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}
