package persist

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the layout injected into timestamped file names
const TimestampLayout = "2006_01_02_15_04_05"

// TimestampedName inserts "_<timestamp>" immediately before the extension of
// name. Names without an extension get the suffix appended.
//
//	TimestampedName("model.pkl", t) == "model_2023_12_15_14_30_45.pkl"
func TimestampedName(name string, now time.Time) string {
	ext := filepath.Ext(name)
	root := strings.TrimSuffix(name, ext)
	return root + "_" + now.Format(TimestampLayout) + ext
}
