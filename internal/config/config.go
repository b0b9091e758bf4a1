// Package config provides configuration management.
// Values come from defaults, an optional config file, then WHQUOTE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"warehouse-quote/internal/logging"
)

// EnvPrefix is prepended to every environment override, e.g. WHQUOTE_SERVER_ADDR
const EnvPrefix = "WHQUOTE"

// Catalog source kinds
const (
	SourceHCL      = "hcl"
	SourcePostgres = "postgres"
)

// Config is the main application configuration
type Config struct {
	// Catalog selects where rates and settings are loaded from
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// CatalogConfig contains rate catalog settings
type CatalogConfig struct {
	// Source is "hcl" or "postgres"
	Source string `json:"source" mapstructure:"source"`

	// Path is the HCL catalog file
	Path string `json:"path" mapstructure:"path"`

	// DSN is the PostgreSQL connection string
	DSN string `json:"dsn" mapstructure:"dsn"`

	// RefreshSchedule is a cron expression; empty disables reloads
	RefreshSchedule string `json:"refresh_schedule" mapstructure:"refresh_schedule"`

	// QueryTimeout bounds one catalog load
	QueryTimeout time.Duration `json:"query_timeout" mapstructure:"query_timeout"`

	// StartupRetry bounds how long the server retries an unavailable source at boot
	StartupRetry time.Duration `json:"startup_retry" mapstructure:"startup_retry"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr            string        `json:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// AllowedOrigins enables CORS for browser clients; empty disables it
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" mapstructure:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:       SourceHCL,
			Path:         filepath.Join("config", "catalog.hcl"),
			QueryTimeout: 10 * time.Second,
			StartupRetry: time.Minute,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from path (optional) and the environment.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper registers every key with its default so AutomaticEnv can see it
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("catalog.source", d.Catalog.Source)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.dsn", d.Catalog.DSN)
	v.SetDefault("catalog.refresh_schedule", d.Catalog.RefreshSchedule)
	v.SetDefault("catalog.query_timeout", d.Catalog.QueryTimeout)
	v.SetDefault("catalog.startup_retry", d.Catalog.StartupRetry)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
	return v
}

// Validate checks that the selected catalog source is usable
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceHCL:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the %s source", SourceHCL)
		}
	case SourcePostgres:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("catalog.dsn is required for the %s source", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
