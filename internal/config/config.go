// Package config loads pipeline configuration from environment variables
// with an optional YAML file overlay.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"giltcli/internal/parse"
)

// envPrefix namespaces the pipeline's environment variables (GILT_*)
const envPrefix = "GILT"

// Config represents the complete pipeline configuration
type Config struct {
	Solver  SolverConfig  `yaml:"solver" envconfig:"SOLVER"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
	Layout  parse.Layout  `yaml:"layout" envconfig:"LAYOUT"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SolverConfig contains Newton-Raphson convergence settings
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance" envconfig:"TOLERANCE" default:"0.001" validate:"gt=0"`
	MaxIterations int     `yaml:"max_iterations" envconfig:"MAX_ITERATIONS" default:"1000" validate:"gt=0"`
}

// BatchConfig contains batch collection settings
type BatchConfig struct {
	// Workers above 1 trades result ordering for throughput
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"1" validate:"gte=1"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load loads configuration from environment variables, applies the YAML
// overlay when configFile names an existing file, and validates the
// result. Pass an empty configFile to use environment and defaults only.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Logger builds a slog.Logger per the logging configuration
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
