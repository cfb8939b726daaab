package catalog

import (
	"log/slog"
	"strings"

	"datakit/internal/files"
)

// Walk maps the basename of every file under dir to its path, skipping
// .gitkeep placeholders. The basename is the file name up to its first dot,
// so "model.v1.pkl" maps to "model". When several files share a basename the
// one walked last wins. Each discovery is logged at debug level.
func Walk(dir string) (map[string]string, error) {
	found, err := files.NewDiscovery("").FindAll(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(found))
	for _, f := range found {
		basename, _, _ := strings.Cut(f.Name, ".")
		out[basename] = f.Path
		slog.Debug("Discovered file", slog.String("basename", basename), slog.String("path", f.Path))
	}
	return out, nil
}
