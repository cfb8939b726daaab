package domain

import (
	"time"
)

// FileRecord is one row of catalog metadata describing a discovered data file.
// All fields are derived from filesystem metadata at scan time.
type FileRecord struct {
	Basename     string    `json:"basename" yaml:"basename"`
	Filename     string    `json:"filename" yaml:"filename"`
	Directory    string    `json:"directory" yaml:"directory"`
	Path         string    `json:"path" yaml:"path"`
	RelativePath string    `json:"relative_path" yaml:"relative_path"`
	Extension    string    `json:"extension" yaml:"extension"`
	SizeMB       float64   `json:"size_mb" yaml:"size_mb"`
	Modified     time.Time `json:"modified" yaml:"modified"`
}

// SummaryRow aggregates the catalog entries sharing a directory and extension
type SummaryRow struct {
	Directory      string    `json:"directory"`
	Extension      string    `json:"extension"`
	Count          int       `json:"count"`
	TotalMB        float64   `json:"total_mb"`
	MeanMB         float64   `json:"mean_mb"`
	LatestModified time.Time `json:"latest_modified"`
}

// ResolutionStatus is the outcome of an exact basename lookup
type ResolutionStatus string

const (
	ResolutionFound     ResolutionStatus = "found"
	ResolutionNotFound  ResolutionStatus = "not_found"
	ResolutionAmbiguous ResolutionStatus = "ambiguous"
)

// Resolution is the result of resolving a basename against the catalog.
// Path is only set when Status is ResolutionFound; Candidates is only
// populated when Status is ResolutionAmbiguous.
type Resolution struct {
	Basename   string           `json:"basename"`
	Status     ResolutionStatus `json:"status"`
	Path       string           `json:"path,omitempty"`
	Candidates []FileRecord     `json:"candidates,omitempty"`
}

// Found reports whether the lookup matched exactly one file
func (r Resolution) Found() bool {
	return r.Status == ResolutionFound
}

// ScanReport describes the most recent catalog scan
type ScanReport struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Subdirs    []string      `json:"subdirs"`
	Extensions []string      `json:"extensions"`
	Files      int           `json:"files"`
	Skipped    []string      `json:"skipped,omitempty"`
}
