package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the repo root.
const FileName = "icabanken.yaml"

// Config represents the top-level icabanken.yaml configuration.
type Config struct {
	Import ImportConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
}

// ImportConfig controls how exports are found and parsed.
type ImportConfig struct {
	Variant       string `yaml:"variant"        env:"ICABANKEN_VARIANT"`        // with-period | without-period
	Dir           string `yaml:"dir"            env:"ICABANKEN_IMPORT_DIR"`     // relative to repo root
	MarkProcessed bool   `yaml:"mark_processed" env:"ICABANKEN_MARK_PROCESSED"` // move parsed files to <dir>/processed
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ICABANKEN_LOG_LEVEL"`
	Format string `yaml:"format" env:"ICABANKEN_LOG_FORMAT"`
}

// Load reads a config file from disk and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default plus environment when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg = Default()
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any ICABANKEN_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Variant:       "with-period",
			Dir:           "import",
			MarkProcessed: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
