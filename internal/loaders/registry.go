package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for extensions with no registered loader
	ErrUnsupportedFormat = errors.New("unsupported file type")

	// ErrMissingKey is returned when an HDF5 load is attempted without Options.Key
	ErrMissingKey = errors.New("HDF5 files require a 'key' parameter")

	// ErrHDF5Unavailable is returned when the binary was built without the hdf5 tag
	ErrHDF5Unavailable = errors.New("HDF5 support not compiled in (build with -tags hdf5)")
)

// Options carries format-specific load settings
type Options struct {
	// Key selects the dataset inside a hierarchical (HDF5) file. Required for .h5.
	Key string
	// Sheet selects a spreadsheet sheet; empty means the first sheet.
	Sheet string
	// Delimiter overrides the CSV field separator; zero means ','.
	Delimiter rune
	// NoHeader treats the first row as data and names columns 0..n-1.
	NoHeader bool
	// SkipRows drops leading rows before the header is read.
	SkipRows int
	// Extra holds additional format-specific switches, passed through verbatim.
	Extra map[string]any
}

func (o Options) extraBool(key string) bool {
	v, ok := o.Extra[key].(bool)
	return ok && v
}

func (o Options) extraString(key string) string {
	v, _ := o.Extra[key].(string)
	return v
}

// Loader reads the file at path
type Loader func(path string, opts Options) (any, error)

// Registry dispatches loads on file extension
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Default returns a registry populated with every built-in format
func Default() *Registry {
	r := NewRegistry()
	r.Register(".csv", LoadCSV)
	r.Register(".xlsx", LoadSpreadsheet)
	r.Register(".xls", LoadSpreadsheet)
	r.Register(".json", LoadJSON)
	r.Register(".pkl", LoadObject)
	r.Register(".parquet", LoadParquet)
	r.Register(".h5", LoadHDF5)
	return r
}

// Register binds a loader to an extension, replacing any previous binding
func (r *Registry) Register(ext string, loader Loader) {
	r.loaders[normalizeExt(ext)] = loader
}

// Lookup returns the loader for an extension
func (r *Registry) Lookup(ext string) (Loader, bool) {
	l, ok := r.loaders[normalizeExt(ext)]
	return l, ok
}

// Extensions lists the registered extensions in sorted order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads path with the loader registered for its extension
func (r *Registry) Load(path string, opts Options) (any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := r.Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return loader(path, opts)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
