package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"datakit/internal/loaders"
	"datakit/pkg/contracts/domain"
)

// Load resolves basename and reads the file with the loader registered for its
// extension. opts is passed to the loader unchanged. Every failure is a
// *LoadError; errors.Is matches ErrNotFound, ErrAmbiguous,
// ErrUnsupportedFormat and ErrMissingKey through it.
func (c *Catalog) Load(basename string, opts loaders.Options) (any, error) {
	v, _, err := c.load(basename, opts)
	return v, err
}

// LoadFrame is Load for tabular files. A value that is not a frame, such as
// an arbitrary serialized object, yields ErrNotTabular.
func (c *Catalog) LoadFrame(basename string, opts loaders.Options) (*domain.Frame, error) {
	v, path, err := c.load(basename, opts)
	if err != nil {
		return nil, err
	}

	f, ok := v.(*domain.Frame)
	if !ok || f == nil {
		return nil, &LoadError{
			Op:       "load",
			Basename: basename,
			Path:     path,
			Cause:    fmt.Errorf("%w: got %T", ErrNotTabular, v),
		}
	}
	return f, nil
}

func (c *Catalog) load(basename string, opts loaders.Options) (any, string, error) {
	res := c.Resolve(basename)
	switch res.Status {
	case domain.ResolutionNotFound:
		return nil, "", &LoadError{Op: "resolve", Basename: basename, Cause: notFound(basename)}
	case domain.ResolutionAmbiguous:
		return nil, "", &LoadError{
			Op:       "resolve",
			Basename: basename,
			Cause:    &AmbiguousError{Basename: basename, Candidates: res.Candidates},
		}
	}

	ext := strings.ToLower(filepath.Ext(res.Path))
	v, err := c.registry.Load(res.Path, opts)
	c.metrics.ObserveLoad(ext, err)
	if err != nil {
		c.logger.Error("Failed to load file",
			slog.String("basename", basename),
			slog.String("path", res.Path),
			slog.String("error", err.Error()))
		return nil, res.Path, &LoadError{Op: "load", Basename: basename, Path: res.Path, Cause: err}
	}

	c.logger.Debug("Loaded file",
		slog.String("basename", basename),
		slog.String("path", res.Path),
		slog.String("format", ext))
	return v, res.Path, nil
}
