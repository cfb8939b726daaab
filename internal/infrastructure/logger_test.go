package infrastructure

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "nested", "app.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
	assert.Same(t, logger, slog.Default())

	logger.Info("test message", slog.String("key", "value"))
	logger.Debug("filtered out")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])

	again, err := InitializeLogger(config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.Same(t, logger, again)
}

func TestGetLoggerBeforeInitialization(t *testing.T) {
	ResetLoggerForTesting()
	assert.Same(t, slog.Default(), GetLogger())
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		contains string
	}{
		{"text", config.LoggingConfig{Level: "debug", Format: "text"}, "level=DEBUG msg=hello"},
		{"json", config.LoggingConfig{Level: "debug", Format: "json"}, `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closer, err := NewLogger(tt.cfg, &buf)
			require.NoError(t, err)
			defer closer.Close()

			logger.Debug("hello")
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestNewLoggerBothOutputs(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, closer, err := NewLogger(config.LoggingConfig{
		Level:    "warn",
		Format:   "text",
		Output:   "both",
		FilePath: logFile,
	}, &buf)
	require.NoError(t, err)

	logger.Info("skipped")
	logger.Warn("kept")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=kept")
	assert.NotContains(t, string(content), "skipped")
	assert.Equal(t, buf.String(), string(content))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"critical", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}
