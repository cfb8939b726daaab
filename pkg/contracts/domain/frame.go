package domain

import (
	"fmt"
)

// Frame is a small column-labelled table produced by the file loaders and
// consumed by the plotting helpers. Rows are positional; the row index is the
// implicit x axis for plots.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"data"`
}

// NewFrame creates a frame with the given column labels and no rows
func NewFrame(columns ...string) *Frame {
	return &Frame{Columns: columns}
}

// Len returns the number of rows
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// ColumnIndex returns the position of a column or -1 when absent
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column. Short rows yield nil cells.
func (f *Frame) Column(name string) ([]any, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}

// Append adds a row; it is padded or truncated to the column count
func (f *Frame) Append(row []any) {
	if len(row) != len(f.Columns) {
		fixed := make([]any, len(f.Columns))
		copy(fixed, row)
		row = fixed
	}
	f.Rows = append(f.Rows, row)
}

// Head returns a frame containing at most n leading rows
func (f *Frame) Head(n int) *Frame {
	if n < 0 || n > len(f.Rows) {
		n = len(f.Rows)
	}
	return &Frame{Columns: f.Columns, Rows: f.Rows[:n]}
}
