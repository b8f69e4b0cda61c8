package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/careerpath/internal/model"
)

// Defaults used when the config file or a key is absent.
const (
	DefaultMinSupport    = 0.001
	DefaultMinConfidence = 0.1
	DefaultExampleLimit  = 5
	DefaultMaxSteps      = 4
	DefaultExportPath    = "association_rules.csv"

	MaxMinSupport = 0.1
	// MaxSelectableSteps bounds prediction.max_steps; paths have at most four steps.
	MaxSelectableSteps = 4
)

// Config is the root configuration for careerpath.
type Config struct {
	Data       DataConfig
	Mining     model.Thresholds
	Prediction PredictionConfig
	Export     ExportConfig
}

// DataConfig locates the career-path table.
type DataConfig struct {
	Path        string   // empty = bundled dataset
	StepColumns []string // empty = every column after the first
}

// PredictionConfig controls the default strategy and selection limits.
type PredictionConfig struct {
	Strategy     model.Strategy
	ExampleLimit int // example paths shown with prefix predictions
	MaxSteps     int // positions a user may select
}

// ExportConfig controls the rules export.
type ExportConfig struct {
	Path string // .csv or .db/.sqlite
}

// rawConfig is used for YAML unmarshaling; pointers tell "absent" from zero.
type rawConfig struct {
	Data struct {
		Path        string   `yaml:"path"`
		StepColumns []string `yaml:"step_columns"`
	} `yaml:"data"`
	Mining struct {
		MinSupport    *float64 `yaml:"min_support"`
		MinConfidence *float64 `yaml:"min_confidence"`
	} `yaml:"mining"`
	Prediction struct {
		Strategy     string `yaml:"strategy"`
		ExampleLimit int    `yaml:"example_limit"`
		MaxSteps     int    `yaml:"max_steps"`
	} `yaml:"prediction"`
	Export struct {
		Path string `yaml:"path"`
	} `yaml:"export"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Mining: model.Thresholds{
			MinSupport:    DefaultMinSupport,
			MinConfidence: DefaultMinConfidence,
		},
		Prediction: PredictionConfig{
			Strategy:     model.StrategyRules,
			ExampleLimit: DefaultExampleLimit,
			MaxSteps:     DefaultMaxSteps,
		},
		Export: ExportConfig{Path: DefaultExportPath},
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.Data = DataConfig{
		Path:        raw.Data.Path,
		StepColumns: raw.Data.StepColumns,
	}
	if raw.Mining.MinSupport != nil {
		cfg.Mining.MinSupport = *raw.Mining.MinSupport
	}
	if raw.Mining.MinConfidence != nil {
		cfg.Mining.MinConfidence = *raw.Mining.MinConfidence
	}
	if raw.Prediction.Strategy != "" {
		cfg.Prediction.Strategy = model.Strategy(raw.Prediction.Strategy)
	}
	if raw.Prediction.ExampleLimit != 0 {
		cfg.Prediction.ExampleLimit = raw.Prediction.ExampleLimit
	}
	if raw.Prediction.MaxSteps != 0 {
		cfg.Prediction.MaxSteps = raw.Prediction.MaxSteps
	}
	if raw.Export.Path != "" {
		cfg.Export.Path = raw.Export.Path
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	// A selection can never be longer than a path.
	if n := len(cfg.Data.StepColumns); n > 0 && n < cfg.Prediction.MaxSteps {
		cfg.Prediction.MaxSteps = n
	}

	return cfg, nil
}

// Validate checks ranges; flag overrides are validated again through it.
func Validate(cfg *Config) error {
	if err := ValidateThresholds(cfg.Mining); err != nil {
		return err
	}
	switch cfg.Prediction.Strategy {
	case model.StrategyRules, model.StrategyPrefix:
	default:
		return fmt.Errorf("prediction.strategy must be %q or %q, got %q", model.StrategyRules, model.StrategyPrefix, cfg.Prediction.Strategy)
	}
	if cfg.Prediction.ExampleLimit < 1 {
		return fmt.Errorf("prediction.example_limit must be positive, got %d", cfg.Prediction.ExampleLimit)
	}
	if cfg.Prediction.MaxSteps < 1 || cfg.Prediction.MaxSteps > MaxSelectableSteps {
		return fmt.Errorf("prediction.max_steps must be between 1 and %d, got %d", MaxSelectableSteps, cfg.Prediction.MaxSteps)
	}
	return nil
}

// ValidateThresholds checks min_support in [0, 0.1] and min_confidence in [0, 1].
func ValidateThresholds(th model.Thresholds) error {
	if th.MinSupport < 0 || th.MinSupport > MaxMinSupport {
		return fmt.Errorf("mining.min_support must be between 0 and %g, got %g", MaxMinSupport, th.MinSupport)
	}
	if th.MinConfidence < 0 || th.MinConfidence > 1 {
		return fmt.Errorf("mining.min_confidence must be between 0 and 1, got %g", th.MinConfidence)
	}
	return nil
}
