package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("NFRECON_REFERENCE_FORMAT", "pipe")
	t.Setenv("NFRECON_WRITE_CSV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pipe", cfg.Run.ReferenceFormat)
	assert.True(t, cfg.Run.WriteCSV)
	assert.Equal(t, ".", cfg.Run.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Run("empty path yields empty set", func(t *testing.T) {
		ov, err := LoadOverrides("")
		require.NoError(t, err)
		assert.Empty(t, ov.HeaderSynonyms)
	})

	t.Run("reads header synonyms", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.yaml")
		content := "header_synonyms:\n  material:\n    - \"Cod. SAP\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		ov, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cod. SAP"}, ov.HeaderSynonyms["material"])
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingConfig{Level: "whatever"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "error"}.SlogLevel())
}
