package catalog

import (
	"errors"
	"fmt"
	"strings"

	"datakit/internal/loaders"
	"datakit/pkg/contracts/domain"
)

var (
	// ErrNotFound is returned when no catalog entry has the requested basename
	ErrNotFound = errors.New("no file found with basename")

	// ErrAmbiguous is returned when several catalog entries share a basename
	ErrAmbiguous = errors.New("multiple files found for basename")

	// ErrNotTabular is returned by LoadFrame when the loaded value is not a frame
	ErrNotTabular = errors.New("loaded value is not tabular")

	// ErrUnsupportedFormat is returned when no loader handles the file's extension
	ErrUnsupportedFormat = loaders.ErrUnsupportedFormat

	// ErrMissingKey is returned when an HDF5 file is loaded without a key
	ErrMissingKey = loaders.ErrMissingKey
)

// AmbiguousError lists the entries competing for one basename
type AmbiguousError struct {
	Basename   string
	Candidates []domain.FileRecord
}

// Error implements the error interface
func (e *AmbiguousError) Error() string {
	paths := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		paths[i] = c.RelativePath
	}
	return fmt.Sprintf("multiple files found for %q: %s", e.Basename, strings.Join(paths, ", "))
}

// Unwrap returns ErrAmbiguous
func (e *AmbiguousError) Unwrap() error {
	return ErrAmbiguous
}

// LoadError reports a failed Load. Op is "resolve" when the basename could
// not be mapped to a single file and "load" when reading the file failed.
type LoadError struct {
	Op       string
	Basename string
	Path     string
	Cause    error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e == nil {
		return "unknown load error"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Basename, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Basename, e.Cause)
}

// Unwrap returns the underlying error
func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func notFound(basename string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, basename)
}
