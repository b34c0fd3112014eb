package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `
dataset:
  drivers_path: testdata/drivers.csv
  trips_path: testdata/trips.csv
priority:
  platform_avg_rating: 4.6
twin:
  default_fatigue_hours: 10
workers: 2
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, validYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dataset.DriversPath != "testdata/drivers.csv" {
		t.Fatalf("drivers path %q", cfg.Dataset.DriversPath)
	}
	if cfg.Priority.PlatformAvgRating != 4.6 {
		t.Fatalf("platform avg rating %v, want file value 4.6", cfg.Priority.PlatformAvgRating)
	}
	if cfg.Priority.N95Trips != 500 {
		t.Fatalf("unset fields must take defaults, got n95=%d", cfg.Priority.N95Trips)
	}
	if cfg.Twin.DefaultFatigueHours != 10 {
		t.Fatalf("fatigue hours %d, want 10", cfg.Twin.DefaultFatigueHours)
	}
	if cfg.Workers != 2 {
		t.Fatalf("workers %d, want 2", cfg.Workers)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, validYAML)
	t.Setenv("DG_WORKERS", "8")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Fatalf("env override ignored, workers=%d", cfg.Workers)
	}
}

func TestLoadInvalid(t *testing.T) {
	// Missing mandatory dataset paths.
	path := writeConfig(t, "workers: 2\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("missing dataset paths must fail")
	}

	// Weights not summing to 1.
	path = writeConfig(t, `
dataset:
  drivers_path: testdata/drivers.csv
  trips_path: testdata/trips.csv
priority:
  weights:
    rating: 0.9
    acceptance: 0.9
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("invalid weights must fail")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file must fail")
	}

	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("unsupported extension must fail")
	}
}
