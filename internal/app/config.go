package app

import (
	"fmt"
	"time"

	"github.com/specialistvlad/glyphforge/internal/notify"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is an explicit config file. When empty the default names
	// are looked up in WorkDir.
	ConfigPath string
	WorkDir    string
	// CodepointsPath is a file with a codepoint table that replaces the
	// codepoints option.
	CodepointsPath string
	// Options are option values set on the command line. They win over the
	// config file.
	Options map[string]any

	LogFormat   string
	LogLevel    string
	Concurrency int
	DryRun      bool

	Watch           bool
	Debounce        time.Duration
	HealthcheckPort int

	Notify notify.Config
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format '%s': must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, fmt.Errorf("the healthcheck server is only available in watch mode")
	}
	if cfg.Watch && cfg.DryRun {
		return nil, fmt.Errorf("watch and dry-run cannot be used together")
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Options == nil {
		cfg.Options = map[string]any{}
	}
	return &cfg, nil
}
