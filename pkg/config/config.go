// Package config handles loading and managing esgcore configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvFactors       = "ESGCORE_FACTORS"
	EnvEngineVersion = "ESGCORE_ENGINE_VERSION"
)

// Config is the top-level configuration for esgcore.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Reference ReferenceConfig `yaml:"reference"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EngineConfig controls result stamping.
type EngineConfig struct {
	Version string `yaml:"version"`
}

// ReferenceConfig selects the emission-factor tables. An empty Source means
// the tables embedded in the binary.
type ReferenceConfig struct {
	Source string   `yaml:"source"` // path, s3://bucket/key or gs://bucket/key
	S3     S3Config `yaml:"s3"`
}

// S3Config holds S3 connection settings for s3:// sources.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ScoringConfig controls scoring behavior. Weights override individual
// criterion weights; each pillar must still sum to 100.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Version: "1.0.0",
		},
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Scoring.Weights == nil {
		cfg.Scoring.Weights = map[string]float64{}
	}

	return cfg, nil
}

// ApplyEnv overrides settings from ESGCORE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvFactors); v != "" {
		c.Reference.Source = v
	}
	if v := os.Getenv(EnvEngineVersion); v != "" {
		c.Engine.Version = v
	}
}

// Validate checks enumerated settings. Weight sums are checked by the scorer.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q (want console or json)", c.Logging.Format)
	}
	if c.Engine.Version == "" {
		return fmt.Errorf("engine.version must not be empty")
	}
	return nil
}

// FindConfigFile looks for .esgcore/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".esgcore", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
