// Package config provides configuration loading and structs for wordsim.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/wordsim/internal/models"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Model   ModelConfig   `yaml:"model"`
	Queries QueriesConfig `yaml:"queries"`
	Journal JournalConfig `yaml:"journal"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ModelConfig describes the vector file to load.
type ModelConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"` // auto, text, or binary
	Limit     int    `yaml:"limit"`  // 0 reads every entry
	CacheSize int    `yaml:"cache_size"`
}

// QueriesConfig lists the pairs to score. File takes precedence over Pairs.
type QueriesConfig struct {
	File  string        `yaml:"file,omitempty"`
	Pairs []models.Pair `yaml:"pairs,omitempty"`
}

// JournalConfig holds the run journal settings.
type JournalConfig struct {
	Enabled      *bool  `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// EnabledOrDefault returns whether runs are journaled; defaults to true when unset.
func (j *JournalConfig) EnabledOrDefault() bool {
	if j.Enabled != nil {
		return *j.Enabled
	}
	return true
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // text or json
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Model.Path = expandPath(cfg.Model.Path, configDir)
	cfg.Journal.DatabasePath = expandPath(cfg.Journal.DatabasePath, configDir)
	if cfg.Queries.File != "" {
		cfg.Queries.File = expandPath(cfg.Queries.File, configDir)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if wd, err := os.Getwd(); err == nil {
		cfg.Journal.DatabasePath = expandPath(cfg.Journal.DatabasePath, wd)
	}
	return cfg
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
