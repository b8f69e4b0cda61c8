package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amishk599/careerpath/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careerpath.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
data:
  path: paths.csv
  step_columns:
    - 1차 이동 직무
    - 2차 이동 직무
    - 3차 이동 직무
mining:
  min_support: 0.01
  min_confidence: 0.3
prediction:
  strategy: prefix
  example_limit: 3
export:
  path: out.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Path != "paths.csv" {
		t.Errorf("Data.Path = %q", cfg.Data.Path)
	}
	if len(cfg.Data.StepColumns) != 3 || cfg.Data.StepColumns[0] != "1차 이동 직무" {
		t.Errorf("StepColumns = %v", cfg.Data.StepColumns)
	}
	if cfg.Mining.MinSupport != 0.01 || cfg.Mining.MinConfidence != 0.3 {
		t.Errorf("Mining = %+v", cfg.Mining)
	}
	if cfg.Prediction.Strategy != model.StrategyPrefix {
		t.Errorf("Strategy = %q, want prefix", cfg.Prediction.Strategy)
	}
	if cfg.Prediction.ExampleLimit != 3 {
		t.Errorf("ExampleLimit = %d, want 3", cfg.Prediction.ExampleLimit)
	}
	// Capped to the number of configured step columns.
	if cfg.Prediction.MaxSteps != 3 {
		t.Errorf("MaxSteps = %d, want 3", cfg.Prediction.MaxSteps)
	}
	if cfg.Export.Path != "out.db" {
		t.Errorf("Export.Path = %q", cfg.Export.Path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "data:\n  path: x.csv\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mining.MinSupport != DefaultMinSupport || cfg.Mining.MinConfidence != DefaultMinConfidence {
		t.Errorf("Mining = %+v, want defaults", cfg.Mining)
	}
	if cfg.Prediction.Strategy != model.StrategyRules {
		t.Errorf("Strategy = %q, want rules", cfg.Prediction.Strategy)
	}
	if cfg.Prediction.MaxSteps != DefaultMaxSteps {
		t.Errorf("MaxSteps = %d, want %d", cfg.Prediction.MaxSteps, DefaultMaxSteps)
	}
	if cfg.Export.Path != DefaultExportPath {
		t.Errorf("Export.Path = %q", cfg.Export.Path)
	}
}

func TestLoad_ExplicitZeroThresholds(t *testing.T) {
	cfg, err := Load(writeConfig(t, "mining:\n  min_support: 0\n  min_confidence: 0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mining.MinSupport != 0 || cfg.Mining.MinConfidence != 0 {
		t.Errorf("Mining = %+v, want zeros", cfg.Mining)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CAREERPATH_TEST_DATA", "/data/paths.csv")
	cfg, err := Load(writeConfig(t, "data:\n  path: ${CAREERPATH_TEST_DATA}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Path != "/data/paths.csv" {
		t.Errorf("Data.Path = %q", cfg.Data.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "mining: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"support above range", "mining:\n  min_support: 0.2\n"},
		{"negative support", "mining:\n  min_support: -0.1\n"},
		{"confidence above one", "mining:\n  min_confidence: 1.5\n"},
		{"unknown strategy", "prediction:\n  strategy: markov\n"},
		{"negative example limit", "prediction:\n  example_limit: -1\n"},
		{"max steps above four", "prediction:\n  max_steps: 10\n"},
		{"negative max steps", "prediction:\n  max_steps: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Load: expected validation error")
			}
		})
	}
}

func TestValidate_MaxStepsBounds(t *testing.T) {
	for _, steps := range []int{1, MaxSelectableSteps} {
		cfg := Default()
		cfg.Prediction.MaxSteps = steps
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate(max_steps=%d) = %v, want nil", steps, err)
		}
	}
	cfg := Default()
	cfg.Prediction.MaxSteps = MaxSelectableSteps + 1
	if err := Validate(cfg); err == nil {
		t.Errorf("Validate(max_steps=%d) = nil, want error", cfg.Prediction.MaxSteps)
	}
}
