package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Engine selections.
const (
	EngineAuto   = "auto"
	EngineJSHint = "jshint"
	EngineSyntax = "syntax"
)

// Defaults.
const (
	DefaultEngine        = EngineAuto
	DefaultTimeout       = 30 * time.Second
	DefaultLogLevel      = "info"
	DefaultWatchDebounce = 200 * time.Millisecond
)

var (
	ErrInvalidEngine   = errors.New("engine must be one of auto, jshint, syntax")
	ErrInvalidTimeout  = errors.New("timeout must not be negative")
	ErrInvalidDebounce = errors.New("watch.debounce must not be negative")
	ErrInvalidLogLevel = errors.New("log_level must be one of debug, info, warn, error")
)

// Config holds the tool's own settings (not the project's .jshintrc).
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Engine   string        `mapstructure:"engine"`
	ToolsDir string        `mapstructure:"tools_dir"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
	Watch    WatchConfig   `mapstructure:"watch"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce    time.Duration `mapstructure:"debounce"`
	ExcludeDirs []string      `mapstructure:"exclude_dirs"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineAuto, EngineJSHint, EngineSyntax:
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidEngine, c.Engine)
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Watch.Debounce < 0 {
		return ErrInvalidDebounce
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
