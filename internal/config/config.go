package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Directory layout
	DataDir   string // raw XML problem documents
	OutputDir string // extracted .txt files, mirrored tree
	ModelDir  string // persisted vectorizer/classifier pair

	// Persistence
	DBPath    string
	NamesPath string // optional id -> display-name lookup file

	// Auth (optional; empty disables the check)
	APIKey string

	// Extraction
	ExtractMode string

	// Training
	TestFraction  float64
	Seed          uint64
	VocabSize     int
	MaxCorpusDocs int // bounds long corpora; 0 means unlimited

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DataDir:   envOr("DATA_DIR", "data"),
		OutputDir: envOr("OUTPUT_DIR", "outputs"),
		ModelDir:  envOr("MODEL_DIR", "model"),

		DBPath:    envOr("DB_PATH", "probclass.db"),
		NamesPath: os.Getenv("NAMES_PATH"),

		APIKey: os.Getenv("PROBCLASS_API_KEY"),

		ExtractMode: envOr("EXTRACT_MODE", "generic"),

		TestFraction:  envFloat("TEST_FRACTION", 0.3),
		Seed:          uint64(envInt64("SEED", 42)),
		VocabSize:     envInt("VOCAB_SIZE", 5000),
		MaxCorpusDocs: envInt("MAX_CORPUS_DOCS", 0),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.VocabSize <= 0 {
		cfg.VocabSize = 5000
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("TEST_FRACTION must be in (0,1) exclusive, got %v", c.TestFraction)
	}
	switch c.ExtractMode {
	case "generic", "targeted":
	default:
		return fmt.Errorf("EXTRACT_MODE must be \"generic\" or \"targeted\", got %q", c.ExtractMode)
	}
	if c.DataDir == "" || c.OutputDir == "" || c.ModelDir == "" {
		return fmt.Errorf("DATA_DIR, OUTPUT_DIR and MODEL_DIR must be set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
