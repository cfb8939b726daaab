package loaders

import (
	"encoding/json"
	"strconv"
	"strings"

	"datakit/pkg/contracts/domain"
)

// inferCell converts a text cell to int64, float64 or bool when it parses
// cleanly; empty cells become nil and everything else stays a string.
func inferCell(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	switch strings.ToLower(t) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// jsonCell converts a decoded JSON value, resolving json.Number
func jsonCell(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// frameFromRows builds a frame from text rows. The header is the first row
// after skip unless noHeader is set, in which case columns are numbered.
// A negative skip counts as zero.
func frameFromRows(rows [][]string, skip int, noHeader bool, raw bool) *domain.Frame {
	skip = max(0, min(skip, len(rows)))
	rows = rows[skip:]

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	var columns []string
	if noHeader || len(rows) == 0 {
		columns = make([]string, width)
		for i := range columns {
			columns[i] = strconv.Itoa(i)
		}
	} else {
		columns = make([]string, width)
		for i := range columns {
			if i < len(rows[0]) && strings.TrimSpace(rows[0][i]) != "" {
				columns[i] = strings.TrimSpace(rows[0][i])
			} else {
				columns[i] = "Unnamed: " + strconv.Itoa(i)
			}
		}
		rows = rows[1:]
	}

	frame := domain.NewFrame(columns...)
	for _, r := range rows {
		cells := make([]any, width)
		for i, c := range r {
			if raw {
				cells[i] = c
			} else {
				cells[i] = inferCell(c)
			}
		}
		frame.Append(cells)
	}
	return frame
}
