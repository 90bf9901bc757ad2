package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Run     RunConfig
	Logging LoggingConfig
}

type RunConfig struct {
	ReferenceFormat string
	OutputDir       string
	OverridesFile   string
	WriteCSV        bool
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables. A .env file in
// the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Run: RunConfig{
			ReferenceFormat: getEnv("NFRECON_REFERENCE_FORMAT", "delimited"),
			OutputDir:       getEnv("NFRECON_OUTPUT_DIR", "."),
			OverridesFile:   getEnv("NFRECON_OVERRIDES_FILE", ""),
			WriteCSV:        getEnvAsBool("NFRECON_WRITE_CSV", false),
		},
		Logging: LoggingConfig{
			Level: getEnv("NFRECON_LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Overrides carries per-site parsing adjustments, mainly extra header
// synonyms for delimited reference sources.
type Overrides struct {
	HeaderSynonyms map[string][]string `yaml:"header_synonyms"`
}

// LoadOverrides reads an overrides YAML file. An empty path yields an
// empty set.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides file: %w", err)
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse overrides file %s: %w", path, err)
	}
	return &ov, nil
}

// SlogLevel maps the configured level name to a slog level, defaulting
// to info on unknown names.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
