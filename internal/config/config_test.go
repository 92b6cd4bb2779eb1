package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8090",
		DataDir:        "data",
		OutputDir:      "outputs",
		ModelDir:       "model",
		DBPath:         "probclass.db",
		ExtractMode:    "generic",
		TestFraction:   0.3,
		Seed:           42,
		VocabSize:      5000,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the ambient environment may carry.
	for _, key := range []string{"PORT", "EXTRACT_MODE", "TEST_FRACTION", "SEED", "VOCAB_SIZE", "JOB_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.TestFraction != 0.3 {
		t.Errorf("expected default test fraction 0.3, got %v", cfg.TestFraction)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected default seed 42, got %d", cfg.Seed)
	}
	if cfg.VocabSize != 5000 {
		t.Errorf("expected default vocab size 5000, got %d", cfg.VocabSize)
	}
	if cfg.ExtractMode != "generic" {
		t.Errorf("expected default extract mode generic, got %q", cfg.ExtractMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("EXTRACT_MODE", "targeted")
	t.Setenv("TEST_FRACTION", "0.25")
	t.Setenv("SEED", "7")
	t.Setenv("JOB_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("PORT not applied, got %q", cfg.Port)
	}
	if cfg.ExtractMode != "targeted" {
		t.Errorf("EXTRACT_MODE not applied, got %q", cfg.ExtractMode)
	}
	if cfg.TestFraction != 0.25 {
		t.Errorf("TEST_FRACTION not applied, got %v", cfg.TestFraction)
	}
	if cfg.Seed != 7 {
		t.Errorf("SEED not applied, got %d", cfg.Seed)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("JOB_TTL not applied, got %v", cfg.JobTTL)
	}
}

func TestValidate_TestFraction(t *testing.T) {
	for _, frac := range []float64{0, 1, -0.2, 1.3} {
		cfg := validConfig()
		cfg.TestFraction = frac
		if err := cfg.Validate(); err == nil {
			t.Errorf("fraction %v: expected validation error", frac)
		}
	}
}

func TestValidate_ExtractMode(t *testing.T) {
	cfg := validConfig()
	cfg.ExtractMode = "clever"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown extract mode")
	}
	cfg.ExtractMode = "targeted"
	if err := cfg.Validate(); err != nil {
		t.Errorf("targeted mode must validate, got %v", err)
	}
}

func TestValidate_RequiredDirectories(t *testing.T) {
	cfg := validConfig()
	cfg.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty OUTPUT_DIR")
	}
}
