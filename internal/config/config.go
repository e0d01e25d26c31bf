// Package config provides configuration loading for ingestd.
//
// Configuration is loaded from an optional YAML file, then overridden by
// environment variables, then backfilled with defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete ingestd configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Tool    ToolConfig    `koanf:"tool"`
	Scratch ScratchConfig `koanf:"scratch"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
	RateLimit       float64  `koanf:"rate_limit"` // requests/second per client, 0 disables
}

// ToolConfig describes the external packer CLI that performs the ingestion.
type ToolConfig struct {
	// Binary is the packer executable, resolved via PATH if not absolute.
	Binary string `koanf:"binary"`
	// WorkDir is the working directory the tool runs in. Injected here rather
	// than read from the process cwd at call time.
	WorkDir string `koanf:"work_dir"`
	// Timeout bounds a single tool invocation wall-clock time.
	Timeout Duration `koanf:"timeout"`
}

// ScratchConfig holds the per-request scratch areas.
type ScratchConfig struct {
	// ConfigDir receives generated tool-config documents.
	ConfigDir string `koanf:"config_dir"`
	// OutputDir receives generated output artifacts.
	OutputDir string `koanf:"output_dir"`
	// Retain keeps scratch artifacts after a request instead of deleting them.
	// Retention is logged per request when enabled.
	Retain bool `koanf:"retain"`
	// SweepInterval is how often the sweeper scans the scratch directories.
	// Zero disables sweeping.
	SweepInterval Duration `koanf:"sweep_interval"`
	// MaxAge is how old a scratch file must be before the sweeper removes it.
	MaxAge Duration `koanf:"max_age"`
}

// LoggingConfig holds zap logger configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// Validation errors.
var (
	ErrInvalidPort    = errors.New("server port must be between 1 and 65535")
	ErrMissingBinary  = errors.New("tool binary must be set")
	ErrMissingScratch = errors.New("scratch directories must be set")
)

// applyDefaults backfills zero values with production defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8420
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if cfg.Tool.Binary == "" {
		cfg.Tool.Binary = "repomix"
	}
	if cfg.Tool.Timeout == 0 {
		cfg.Tool.Timeout = Duration(5 * time.Minute)
	}
	if cfg.Scratch.ConfigDir == "" {
		cfg.Scratch.ConfigDir = "/tmp/ingestd/configs"
	}
	if cfg.Scratch.OutputDir == "" {
		cfg.Scratch.OutputDir = "/tmp/ingestd/outputs"
	}
	if cfg.Scratch.MaxAge == 0 {
		cfg.Scratch.MaxAge = Duration(24 * time.Hour)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Tool.Binary == "" {
		return ErrMissingBinary
	}
	if c.Scratch.ConfigDir == "" || c.Scratch.OutputDir == "" {
		return ErrMissingScratch
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
