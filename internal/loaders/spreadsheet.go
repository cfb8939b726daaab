package loaders

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadSpreadsheet reads one sheet of an Excel workbook into a frame.
// Options.Sheet picks the sheet (default: first). Extra switch
// "raw_cell_value" (bool) disables number formatting of cells.
func LoadSpreadsheet(path string, opts Options) (any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: opts.extraBool("raw_cell_value")})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return frameFromRows(rows, opts.SkipRows, opts.NoHeader, false), nil
}
