package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"datakit/pkg/contracts/domain"
)

// ErrUnrecognizedJSON is returned when a JSON document has no tabular shape
var ErrUnrecognizedJSON = errors.New("unrecognized JSON layout")

// LoadJSON reads a JSON document into a frame. Accepted layouts:
//
//	records:  [{"a": 1, "b": 2}, ...]
//	split:    {"columns": ["a", "b"], "data": [[1, 2], ...]}
//	columns:  {"a": {"0": 1, "1": 3}, "b": {"0": 2, "1": 4}}
//	arrays:   {"a": [1, 3], "b": [2, 4]}
//
// Extra switch "orient" ("records", "split", "columns") forces a layout.
// Record and column keys are sorted since JSON objects are unordered.
func LoadJSON(path string, opts Options) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON %s: %w", path, err)
	}

	orient := opts.extraString("orient")
	switch v := doc.(type) {
	case []any:
		if orient != "" && orient != "records" {
			return nil, fmt.Errorf("%w: array document with orient %q", ErrUnrecognizedJSON, orient)
		}
		return asAny(frameFromRecords(v))
	case map[string]any:
		if _, ok := v["columns"]; ok && orient != "columns" {
			if _, ok := v["data"]; ok {
				return asAny(frameFromSplit(v))
			}
		}
		if orient == "split" {
			return nil, fmt.Errorf("%w: split orient needs columns and data", ErrUnrecognizedJSON)
		}
		return asAny(frameFromColumns(v))
	default:
		return nil, fmt.Errorf("%w: top-level %T", ErrUnrecognizedJSON, doc)
	}
}

// asAny keeps a failed conversion from surfacing as a typed nil
func asAny(f *domain.Frame, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

func frameFromRecords(records []any) (*domain.Frame, error) {
	keys := map[string]struct{}{}
	for i, r := range records {
		obj, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T", ErrUnrecognizedJSON, i, r)
		}
		for k := range obj {
			keys[k] = struct{}{}
		}
	}

	columns := sortedKeys(keys)
	frame := domain.NewFrame(columns...)
	for _, r := range records {
		obj := r.(map[string]any)
		cells := make([]any, len(columns))
		for i, c := range columns {
			cells[i] = jsonCell(obj[c])
		}
		frame.Append(cells)
	}
	return frame, nil
}

func frameFromSplit(doc map[string]any) (*domain.Frame, error) {
	rawCols, ok := doc["columns"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: columns is %T", ErrUnrecognizedJSON, doc["columns"])
	}
	rawRows, ok := doc["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: data is %T", ErrUnrecognizedJSON, doc["data"])
	}

	columns := make([]string, len(rawCols))
	for i, c := range rawCols {
		columns[i] = fmt.Sprint(jsonCell(c))
	}

	frame := domain.NewFrame(columns...)
	for i, r := range rawRows {
		row, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: data row %d is %T", ErrUnrecognizedJSON, i, r)
		}
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = jsonCell(c)
		}
		frame.Append(cells)
	}
	return frame, nil
}

func frameFromColumns(doc map[string]any) (*domain.Frame, error) {
	columns := make([]string, 0, len(doc))
	for k := range doc {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	// Collect the row index: positions for arrays, keys for objects
	index := map[string]struct{}{}
	for _, c := range columns {
		switch col := doc[c].(type) {
		case []any:
			for i := range col {
				index[strconv.Itoa(i)] = struct{}{}
			}
		case map[string]any:
			for k := range col {
				index[k] = struct{}{}
			}
		default:
			return nil, fmt.Errorf("%w: column %q is %T", ErrUnrecognizedJSON, c, col)
		}
	}

	rowKeys := sortedIndex(index)
	frame := domain.NewFrame(columns...)
	for _, key := range rowKeys {
		cells := make([]any, len(columns))
		for i, c := range columns {
			switch col := doc[c].(type) {
			case []any:
				if pos, err := strconv.Atoi(key); err == nil && pos < len(col) {
					cells[i] = jsonCell(col[pos])
				}
			case map[string]any:
				cells[i] = jsonCell(col[key])
			}
		}
		frame.Append(cells)
	}
	return frame, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sortedIndex orders row keys numerically when they are all integers
func sortedIndex(set map[string]struct{}) []string {
	out := sortedKeys(set)
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i])
		b, errB := strconv.Atoi(out[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}
