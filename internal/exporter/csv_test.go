package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/internal/config"
	"datakit/pkg/contracts/domain"
)

func setupTestEnv(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths, err := config.NewPaths(t.TempDir(), "data")
	require.NoError(t, err)
	return NewCSVWriter(paths), paths
}

// readCSV reads a file written by the exporter, dropping the BOM if present
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	content = bytes.TrimPrefix(content, utf8BOM)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExport_ReplacesFileAndWritesBOM(t *testing.T) {
	writer, paths := setupTestEnv(t)
	dest := filepath.Join(paths.ReportsDir, "nested", "frame.csv")

	first := domain.NewFrame("n")
	first.Append([]any{int64(1)})
	first.Append([]any{int64(2)})
	require.NoError(t, writer.ExportFrame(filepath.Join("nested", "frame.csv"), first))

	second := domain.NewFrame("n")
	second.Append([]any{int64(3)})
	require.NoError(t, writer.ExportFrame(filepath.Join("nested", "frame.csv"), second))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))
	assert.Equal(t, [][]string{{"n"}, {"3"}}, readCSV(t, dest))
}

func TestExport_QuotesSpecialCharacters(t *testing.T) {
	writer, _ := setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "quoted.csv")

	f := domain.NewFrame("a,b", "quote", "multi")
	f.Append([]any{"x,y", `say "hi"`, "line\nbreak"})
	require.NoError(t, writer.ExportFrame(path, f))

	assert.Equal(t, [][]string{
		{"a,b", "quote", "multi"},
		{"x,y", `say "hi"`, "line\nbreak"},
	}, readCSV(t, path))
}

func TestExport_UnwritableDestination(t *testing.T) {
	writer, _ := setupTestEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := writer.ExportEntries(filepath.Join(blocker, "catalog.csv"), nil)
	assert.Error(t, err)
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	writer, paths := setupTestEnv(t)

	abs := filepath.Join(t.TempDir(), "abs.csv")
	assert.Equal(t, abs, writer.resolvePath(abs))
	assert.Equal(t, filepath.Join(paths.ReportsDir, "catalog.csv"), writer.resolvePath("catalog.csv"))
	assert.Equal(t, "rel.csv", NewCSVWriter(nil).resolvePath("rel.csv"))
}

func TestExportEntries(t *testing.T) {
	writer, paths := setupTestEnv(t)
	modified := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	entries := []domain.FileRecord{{
		Basename:     "sales",
		Filename:     "sales.csv",
		Directory:    "raw",
		Path:         "/p/data/raw/sales.csv",
		RelativePath: "data/raw/sales.csv",
		Extension:    ".csv",
		SizeMB:       1.5,
		Modified:     modified,
	}}

	require.NoError(t, writer.ExportEntries("catalog.csv", entries))

	records := readCSV(t, filepath.Join(paths.ReportsDir, "catalog.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, EntryHeaders, records[0])
	assert.Equal(t, []string{
		"sales", "sales.csv", "raw", "/p/data/raw/sales.csv", "data/raw/sales.csv", ".csv", "1.500", "2024-02-03T04:05:06Z",
	}, records[1])
}

func TestExportSummary(t *testing.T) {
	writer, paths := setupTestEnv(t)

	rows := []domain.SummaryRow{
		{Directory: "processed", Extension: ".parquet", Count: 1, TotalMB: 0.25, MeanMB: 0.25},
		{Directory: "raw", Extension: ".csv", Count: 2, TotalMB: 1.5, MeanMB: 0.75},
	}
	require.NoError(t, writer.ExportSummary("summary.csv", rows))

	records := readCSV(t, filepath.Join(paths.ReportsDir, "summary.csv"))
	assert.Equal(t, [][]string{
		SummaryHeaders,
		{"processed", ".parquet", "1", "0.250", "0.250", ""},
		{"raw", ".csv", "2", "1.500", "0.750", ""},
	}, records)
}

func TestExportFrame(t *testing.T) {
	writer, _ := setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "frame.csv")

	f := domain.NewFrame("id", "price", "ok", "note")
	f.Append([]any{int64(1), 2.5, true, "a"})
	f.Append([]any{int64(2), nil, false})

	require.NoError(t, writer.ExportFrame(path, f))
	assert.Equal(t, [][]string{
		{"id", "price", "ok", "note"},
		{"1", "2.5", "true", "a"},
		{"2", "", "false", ""},
	}, readCSV(t, path))

	assert.ErrorIs(t, writer.ExportFrame(path, nil), ErrNoFrame)
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{nil, ""},
		{int64(7), "7"},
		{0.1, "0.1"},
		{"text", "text"},
		{true, "true"},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01T00:00:00Z"},
		{[]int{1, 2}, "[1 2]"},
		{map[string]int{"a": 1}, "map[a:1]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatCell(tt.in))
	}
}
