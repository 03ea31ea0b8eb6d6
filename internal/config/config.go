// Package config loads brp settings from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAutoSaveMs = 250
	MaxAutoSaveMs     = 60000
)

// Config holds runtime settings for the brp binary.
type Config struct {
	DBPath      string `yaml:"db_path"`
	AutoSaveMs  int    `yaml:"autosave_ms"`
	LogUseCases bool   `yaml:"log_use_cases"`
	SeedDemo    bool   `yaml:"seed_demo"`
}

// AutoSaveDelay returns the debounce window for draft saves.
func (c *Config) AutoSaveDelay() time.Duration {
	return time.Duration(c.AutoSaveMs) * time.Millisecond
}

// DefaultDir is ~/.brp, or .brp in the working directory when the home
// directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".brp"
	}
	return filepath.Join(home, ".brp")
}

// DefaultPath is the config file read when BRP_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BRP_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config without consulting
// the environment.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BRP_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BRP_AUTOSAVE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.AutoSaveMs = n
		}
	}
	if v := os.Getenv("BRP_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogUseCases = b
		}
	}
	if v := os.Getenv("BRP_SEED_DEMO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SeedDemo = b
		}
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = filepath.Join(DefaultDir(), "brp.db")
	}
	if c.AutoSaveMs == 0 {
		c.AutoSaveMs = DefaultAutoSaveMs
	}
}

func (c *Config) validate() error {
	var errs []string
	if c.AutoSaveMs < 0 || c.AutoSaveMs > MaxAutoSaveMs {
		errs = append(errs, fmt.Sprintf("autosave_ms must be between 1 and %d", MaxAutoSaveMs))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
