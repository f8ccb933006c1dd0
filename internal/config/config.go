// Package config provides configuration management for snapview.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the snapview configuration. File values are overridden
// by the standard RESTIC_* environment variables so existing restic setups
// work without a config file at all.
type Config struct {
	// Repository is the restic repository location (RESTIC_REPOSITORY).
	Repository string `yaml:"repository"`

	// PasswordFile is a path to a file holding the repository password
	// (RESTIC_PASSWORD_FILE).
	PasswordFile string `yaml:"password_file"`

	// PasswordCommand is a command whose stdout is the repository password
	// (RESTIC_PASSWORD_COMMAND).
	PasswordCommand string `yaml:"password_command"`

	// ResticBinary is the restic executable to invoke (default "restic").
	ResticBinary string `yaml:"restic_binary"`

	Download DownloadConfig `yaml:"download"`
	Log      LogConfig      `yaml:"log"`
}

// DownloadConfig holds restore-destination settings.
type DownloadConfig struct {
	// DefaultDir is the initial destination offered by the download
	// dialog. Empty means the process working directory.
	DefaultDir string `yaml:"default_dir"`
}

// LogConfig holds operation-log settings.
type LogConfig struct {
	// File receives one JSON line per restic invocation. Empty disables.
	File string `yaml:"file"`

	// Level is debug, info, warn or error (default info).
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ResticBinary: "restic",
		Log:          LogConfig{Level: "info"},
	}
}

// Load reads the config file from the default location, applies environment
// overrides, and returns the result. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile reads the config from path. A missing file yields defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	if cfg.ResticBinary == "" {
		cfg.ResticBinary = "restic"
	}
	return cfg, nil
}

// applyEnv overlays the standard restic environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("RESTIC_REPOSITORY"); v != "" {
		c.Repository = v
	}
	if v := os.Getenv("RESTIC_PASSWORD_FILE"); v != "" {
		c.PasswordFile = v
	}
	if v := os.Getenv("RESTIC_PASSWORD_COMMAND"); v != "" {
		c.PasswordCommand = v
	}
}

// Validate checks that the configuration is sufficient to open the
// repository. Failures here are fatal before the UI starts.
func (c *Config) Validate() error {
	if c.Repository == "" {
		return fmt.Errorf("no repository configured: set repository in the config file or RESTIC_REPOSITORY")
	}
	if !c.hasPasswordSource() {
		return fmt.Errorf("no password configured: set RESTIC_PASSWORD, password_file, or password_command")
	}
	return nil
}

// hasPasswordSource reports whether any password mechanism is configured.
func (c *Config) hasPasswordSource() bool {
	if c.PasswordFile != "" || c.PasswordCommand != "" {
		return true
	}
	return os.Getenv("RESTIC_PASSWORD") != ""
}
