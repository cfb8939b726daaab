// Package exporter writes catalog tables and loaded frames as CSV.
//
// CSVWriter is the core writer, with support for headers, appending,
// streaming and a UTF-8 BOM for spreadsheet compatibility. Relative paths are
// resolved against the project's reports directory.
//
// Example usage:
//
//	paths, _ := config.NewPaths(".", "data")
//	w := exporter.NewCSVWriter(paths)
//
//	// reports/catalog.csv
//	err := w.ExportEntries("catalog.csv", cat.Entries())
//
//	rows, _ := cat.Summarize()
//	err = w.ExportSummary("summary.csv", rows)
package exporter
