package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/internal/persist"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - Jupyter Notebook - (DEBUG|INFO|WARNING|ERROR) - .+$`)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestOpenLogFormat(t *testing.T) {
	dir := t.TempDir()

	log, err := OpenLog(dir, "analysis.log", slog.LevelDebug, false)
	require.NoError(t, err)
	defer log.Close()

	assert.Equal(t, filepath.Join(dir, "analysis.log"), log.Path)
	assert.Equal(t, "Jupyter Notebook", log.Identity())

	log.Debug("starting")
	log.Info("loaded rows", slog.Int("rows", 42))
	log.Warn("careful")
	log.Error("failed")

	lines := readLines(t, log.Path)
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, linePattern, line)
	}
	assert.True(t, strings.HasSuffix(lines[0], " - DEBUG - starting"))
	assert.True(t, strings.HasSuffix(lines[1], " - INFO - loaded rows rows=42"))
	assert.Contains(t, lines[2], " - WARNING - careful")
}

func TestOpenLogLevelFilter(t *testing.T) {
	dir := t.TempDir()

	log, err := OpenLog(dir, "filtered.log", slog.LevelWarn, false)
	require.NoError(t, err)
	defer log.Close()

	log.Info("dropped")
	log.Warn("kept")

	lines := readLines(t, log.Path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestOpenLogTimestamp(t *testing.T) {
	dir := t.TempDir()

	log, err := OpenLog(dir, "run.log", slog.LevelInfo, true)
	require.NoError(t, err)
	defer log.Close()

	assert.Regexp(t, `run_\d{4}_\d{2}_\d{2}_\d{2}_\d{2}_\d{2}\.log$`, log.Path)
	assert.FileExists(t, log.Path)
}

func TestOpenLogAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "append.log")
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0644))

	log, err := OpenLog(dir, "append.log", slog.LevelInfo, false)
	require.NoError(t, err)
	log.Info("new line")
	require.NoError(t, log.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "existing line", lines[0])
}

func TestOpenLogRequiresFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := OpenLog(missing, "x.log", slog.LevelInfo, false)
	require.Error(t, err)
	assert.NoDirExists(t, missing)

	_, err = OpenLog(t.TempDir(), "", slog.LevelInfo, false)
	assert.ErrorIs(t, err, persist.ErrEmptyFilename)
}

func TestOpenLogReplacesPreviousHandler(t *testing.T) {
	dir := t.TempDir()

	first, err := OpenLog(dir, "first.log", slog.LevelInfo, false)
	require.NoError(t, err)
	second, err := OpenLog(dir, "second.log", slog.LevelInfo, false)
	require.NoError(t, err)
	defer second.Close()

	first.Info("after replacement")
	second.Info("only once")

	assert.Empty(t, readLines(t, first.Path))
	lines := readLines(t, second.Path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "only once")

	// the replaced handle is already closed
	assert.NoError(t, first.Close())
}

func TestOpenLogAsIdentities(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenLogAs("training", dir, "a.log", slog.LevelInfo, false)
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenLogAs("scoring", dir, "b.log", slog.LevelInfo, false)
	require.NoError(t, err)
	defer b.Close()

	a.Info("from a")
	b.Info("from b")

	assert.Contains(t, readLines(t, a.Path)[0], " - training - INFO - from a")
	assert.Contains(t, readLines(t, b.Path)[0], " - scoring - INFO - from b")
}

func TestLineHandlerAttrsAndGroups(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(newLineHandler(&sb, "id", slog.LevelDebug))

	logger.With(slog.String("run", "r1")).WithGroup("model").Info("fit", slog.Float64("score", 0.5))

	line := strings.TrimSpace(sb.String())
	assert.True(t, strings.HasSuffix(line, " - id - INFO - fit run=r1 model.score=0.5"), line)
	assert.True(t, newLineHandler(&sb, "id", slog.LevelWarn).Enabled(context.Background(), slog.LevelError))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "DEBUG", levelName(slog.LevelDebug))
	assert.Equal(t, "INFO", levelName(slog.LevelInfo))
	assert.Equal(t, "WARNING", levelName(slog.LevelWarn))
	assert.Equal(t, "ERROR", levelName(slog.LevelError))
	assert.Equal(t, "CRITICAL", levelName(slog.LevelError+4))
}
