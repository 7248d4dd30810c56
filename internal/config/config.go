// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values.
const (
	DefaultTheme          = "classic"
	DefaultNoticeDuration = "3s"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultProjectFile    = "notes.toml"
)

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

// Config holds the full configuration for notes.
type Config struct {
	Theme string `toml:"theme"`

	// StrictEdit applies the create rule (3 characters) to edits as well.
	StrictEdit bool `toml:"strict_edit"`

	// NoticeDuration is how long transient notices stay on screen.
	NoticeDuration string `toml:"notice_duration"`

	Log LogConfig `toml:"log"`

	notice time.Duration
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.Theme = DefaultTheme
	cfg.NoticeDuration = DefaultNoticeDuration
	cfg.Log.Level = DefaultLogLevel
	cfg.Log.Format = DefaultLogFormat
	cfg.notice = 3 * time.Second
}

// Notice returns the parsed notice duration. Valid after Validate.
func (c *Config) Notice() time.Duration {
	return c.notice
}

// Validate checks enumerated values and parses durations.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if !contains(Themes, c.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}

	d, err := time.ParseDuration(c.NoticeDuration)
	if err != nil {
		return fmt.Errorf("invalid notice_duration %q: %w", c.NoticeDuration, err)
	}
	if d <= 0 {
		return fmt.Errorf("notice_duration must be positive, got %s", d)
	}
	c.notice = d

	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
