package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from these sources, later ones winning:
//  1. Defaults
//  2. User config file (<user config dir>/notes/config.toml)
//  3. Project config file (notes.toml in the working directory)
//  4. explicit file (the -config flag, or NOTES_CONFIG)
//  5. Environment variables
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if explicit == "" {
		explicit = os.Getenv("NOTES_CONFIG")
	}
	if explicit != "" {
		if err := loadConfigFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(dir, "notes", "config.toml"))
}

func findProjectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(wd, DefaultProjectFile))
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return path // let the decoder report the real problem
		}
		return ""
	}
	return path
}

// loadFromEnv overrides config from NOTES_* environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("NOTES_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("NOTES_STRICT_EDIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTES_STRICT_EDIT: %w", err)
		}
		cfg.StrictEdit = b
	}
	if v := os.Getenv("NOTES_NOTICE_DURATION"); v != "" {
		cfg.NoticeDuration = v
	}
	if v := os.Getenv("NOTES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NOTES_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("NOTES_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}
