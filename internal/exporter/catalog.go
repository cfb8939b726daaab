package exporter

import (
	"errors"
	"strconv"

	"datakit/pkg/contracts/domain"
)

// ErrNoFrame is returned by ExportFrame for a nil frame
var ErrNoFrame = errors.New("no frame to export")

// EntryHeaders are the column names of an exported catalog table
var EntryHeaders = []string{
	"basename", "filename", "directory", "path", "relative_path", "extension", "size_mb", "modified",
}

// SummaryHeaders are the column names of an exported catalog summary
var SummaryHeaders = []string{
	"directory", "extension", "count", "total_mb", "mean_mb", "latest_modified",
}

// ExportEntries writes catalog records, one row per file
func (w *CSVWriter) ExportEntries(filePath string, entries []domain.FileRecord) error {
	return w.export(filePath, table{
		name:    "entries",
		headers: EntryHeaders,
		rows:    len(entries),
		produce: func(emit emitFunc) error {
			for _, e := range entries {
				if err := emit(entryRecord(e)); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// ExportSummary writes the per directory and extension summary
func (w *CSVWriter) ExportSummary(filePath string, rows []domain.SummaryRow) error {
	return w.export(filePath, table{
		name:    "summary",
		headers: SummaryHeaders,
		rows:    len(rows),
		produce: func(emit emitFunc) error {
			for _, r := range rows {
				if err := emit(summaryRecord(r)); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// ExportFrame writes a loaded frame with its column labels as the header.
// Missing cells are written empty.
func (w *CSVWriter) ExportFrame(filePath string, f *domain.Frame) error {
	if f == nil {
		return ErrNoFrame
	}

	return w.export(filePath, table{
		name:    "frame",
		headers: f.Columns,
		rows:    f.Len(),
		produce: func(emit emitFunc) error {
			record := make([]string, len(f.Columns))
			for _, row := range f.Rows {
				for j := range record {
					record[j] = ""
					if j < len(row) {
						record[j] = formatCell(row[j])
					}
				}
				if err := emit(record); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

func entryRecord(e domain.FileRecord) []string {
	return []string{
		e.Basename,
		e.Filename,
		e.Directory,
		e.Path,
		e.RelativePath,
		e.Extension,
		formatMB(e.SizeMB),
		formatTime(e.Modified),
	}
}

func summaryRecord(r domain.SummaryRow) []string {
	return []string{
		r.Directory,
		r.Extension,
		strconv.Itoa(r.Count),
		formatMB(r.TotalMB),
		formatMB(r.MeanMB),
		formatTime(r.LatestModified),
	}
}
