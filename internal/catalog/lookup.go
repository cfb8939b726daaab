package catalog

import (
	"log/slog"
	"strings"

	"datakit/pkg/contracts/domain"
)

// Search returns the entries whose basename or filename contains pattern,
// ignoring case, in table order. An empty table is scanned first.
func (c *Catalog) Search(pattern string) ([]domain.FileRecord, error) {
	if err := c.ensureScanned(); err != nil {
		return nil, err
	}
	c.metrics.SearchesTotal.Inc()

	needle := strings.ToLower(pattern)
	matches := []domain.FileRecord{}
	for _, rec := range c.entries {
		if strings.Contains(strings.ToLower(rec.Basename), needle) ||
			strings.Contains(strings.ToLower(rec.Filename), needle) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// Resolve looks up basename exactly against the current table. Not-found and
// ambiguous outcomes are logged at warn level. Resolve never scans.
func (c *Catalog) Resolve(basename string) domain.Resolution {
	var matches []domain.FileRecord
	for _, rec := range c.entries {
		if rec.Basename == basename {
			matches = append(matches, rec)
		}
	}

	res := domain.Resolution{Basename: basename}
	switch len(matches) {
	case 0:
		res.Status = domain.ResolutionNotFound
		c.logger.Warn("No file found with basename", slog.String("basename", basename))
	case 1:
		res.Status = domain.ResolutionFound
		res.Path = matches[0].Path
	default:
		res.Status = domain.ResolutionAmbiguous
		res.Candidates = matches
		c.logger.Warn("Multiple files found for basename",
			slog.String("basename", basename),
			slog.Any("candidates", describe(matches)))
	}

	c.metrics.ObserveResolution(string(res.Status))
	return res
}

// Path resolves basename to a single absolute path. It returns an error
// wrapping ErrNotFound, or an *AmbiguousError, when that is not possible.
func (c *Catalog) Path(basename string) (string, error) {
	res := c.Resolve(basename)
	switch res.Status {
	case domain.ResolutionFound:
		return res.Path, nil
	case domain.ResolutionAmbiguous:
		return "", &AmbiguousError{Basename: basename, Candidates: res.Candidates}
	default:
		return "", notFound(basename)
	}
}

// describe renders candidates as "filename (directory) relative_path" lines
func describe(recs []domain.FileRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Filename + " (" + r.Directory + ") " + r.RelativePath
	}
	return out
}
