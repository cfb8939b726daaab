package exporter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// formatMB formats a size in megabytes with the catalog's 3 decimal places
func formatMB(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// formatTime formats timestamps as RFC 3339 in their own zone
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// formatCell renders a frame cell. Missing cells become empty strings and
// values cast cannot stringify, such as nested lists, use their fmt form.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return formatTime(x)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
