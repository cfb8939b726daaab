package exporter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"datakit/internal/config"
)

// utf8BOM lets spreadsheet applications detect the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter exports catalog tables. Relative destinations land in the
// project's reports directory.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a writer rooted at the given project layout; nil
// paths leave relative destinations relative to the working directory
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// emitFunc writes one record of a table
type emitFunc func(record []string) error

// table describes one export: its name for logging, header row and a
// producer that emits every record in order
type table struct {
	name    string
	headers []string
	rows    int
	produce func(emit emitFunc) error
}

// export writes t to filePath, replacing any previous file. Missing parent
// directories are created.
func (w *CSVWriter) export(filePath string, t table) error {
	dest := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	buf := bufio.NewWriter(file)
	out := csv.NewWriter(buf)

	err = writeTable(buf, out, t)
	if err == nil {
		err = buf.Flush()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to export %s to %s: %w", t.name, dest, err)
	}

	slog.Info("Exported catalog table",
		slog.String("table", t.name),
		slog.String("path", dest),
		slog.Int("rows", t.rows))
	return nil
}

func writeTable(buf *bufio.Writer, out *csv.Writer, t table) error {
	if _, err := buf.Write(utf8BOM); err != nil {
		return err
	}
	if err := out.Write(t.headers); err != nil {
		return err
	}

	n := 0
	err := t.produce(func(record []string) error {
		if err := out.Write(record); err != nil {
			return fmt.Errorf("row %d: %w", n, err)
		}
		n++
		return nil
	})
	if err != nil {
		return err
	}

	out.Flush()
	return out.Error()
}

// resolvePath places relative paths under the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return filepath.Join(w.paths.ReportsDir, filePath)
}
