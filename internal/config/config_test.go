package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "data"))

	cfg, err := Load()
	require.NoError(t, err)

	// Should return default config
	assert.Equal(t, filepath.Join(tempDir, "data", "todoey", "todoey.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(tempDir, "data", "todoey", "logs", "todoey.log"), cfg.Logging.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "", cfg.Search.Locale)
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "data"))

	configDir := filepath.Join(tempDir, "todoey")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configContent := `database:
  path: /tmp/custom.db
logging:
  level: debug
search:
  locale: sv
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sv", cfg.Search.Locale)
	// Missing values are filled from defaults
	assert.Equal(t, filepath.Join(tempDir, "data", "todoey", "logs", "todoey.log"), cfg.Logging.Path)
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Database.Path = "/srv/todoey.db"
	cfg.Search.Locale = "de"
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LoggingConfig{Level: tt.level}.SlogLevel(), "level %q", tt.level)
	}
}
