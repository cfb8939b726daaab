package loaders

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// LoadCSV reads a delimited text file into a frame.
// Extra switches: "lazy_quotes" (bool), "comment" (single character),
// "raw" (bool, keep every cell as a string).
func LoadCSV(path string, opts Options) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.extraBool("lazy_quotes")
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if c := opts.extraString("comment"); c != "" {
		r, _ := utf8.DecodeRuneInString(c)
		reader.Comment = r
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}

	// Strip a UTF-8 BOM written by spreadsheet tools
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}

	return frameFromRows(rows, opts.SkipRows, opts.NoHeader, opts.extraBool("raw")), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
