package config

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	EnvLogLevel  = "PENDAKWAAN_LOG_LEVEL"
	EnvLogFormat = "PENDAKWAAN_LOG_FORMAT"
)

// LoggingConfig selects the slog handler and minimum level.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// SlogLevel returns Level as a slog.Level.
func (c *LoggingConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	lvl.UnmarshalText([]byte(c.Level))
	return lvl
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LoggingConfig) Finalize() error {
	defaultString(&c.Level, "info")
	defaultString(&c.Format, "text")
	envString(EnvLogLevel, &c.Level)
	envString(EnvLogFormat, &c.Format)

	c.Format = strings.ToLower(c.Format)

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("format must be text or json: %q", c.Format)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	mergeString(&c.Level, overlay.Level)
	mergeString(&c.Format, overlay.Format)
}
