package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultLogIdentity tags every notebook log line
const DefaultLogIdentity = "Jupyter Notebook"

// DefaultSubdirs returns the conventional data subdirectories, in scan order
func DefaultSubdirs() []string {
	return []string{"raw", "processed", "interim", "external"}
}

// DefaultExtensions returns the data file extensions the catalog accepts
func DefaultExtensions() []string {
	return []string{".csv", ".xlsx", ".json", ".pkl", ".parquet", ".h5", ".xls"}
}

// Paths contains the conventional project layout.
// Every path is absolute and derived from Root.
//
//	root/
//	  ├── data/
//	  │   ├── raw/
//	  │   ├── processed/
//	  │   ├── interim/
//	  │   └── external/
//	  ├── models/
//	  ├── logs/
//	  └── reports/
//	      └── figures/
type Paths struct {
	Root         string
	DataDir      string
	RawDir       string
	ProcessedDir string
	InterimDir   string
	ExternalDir  string
	ModelsDir    string
	ReportsDir   string
	FiguresDir   string
	LogsDir      string
}

// NewPaths resolves the project layout under root. dataDir is relative to
// root unless absolute; an empty dataDir means "data".
func NewPaths(root, dataDir string) (*Paths, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	if dataDir == "" {
		dataDir = "data"
	}
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(absRoot, dataDir)
	}

	reportsDir := filepath.Join(absRoot, "reports")

	return &Paths{
		Root:         absRoot,
		DataDir:      dataDir,
		RawDir:       filepath.Join(dataDir, "raw"),
		ProcessedDir: filepath.Join(dataDir, "processed"),
		InterimDir:   filepath.Join(dataDir, "interim"),
		ExternalDir:  filepath.Join(dataDir, "external"),
		ModelsDir:    filepath.Join(absRoot, "models"),
		ReportsDir:   reportsDir,
		FiguresDir:   filepath.Join(reportsDir, "figures"),
		LogsDir:      filepath.Join(absRoot, "logs"),
	}, nil
}

// DataSubdir returns the absolute path of a labelled data subdirectory
func (p *Paths) DataSubdir(label string) string {
	return filepath.Join(p.DataDir, label)
}

// GetModelPath returns the full path for a serialized model file
func (p *Paths) GetModelPath(filename string) string {
	return filepath.Join(p.ModelsDir, filename)
}

// GetFigurePath returns the full path for a figure file
func (p *Paths) GetFigurePath(filename string) string {
	return filepath.Join(p.FiguresDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates the conventional directories if they don't exist.
// Nothing in the catalog requires this; it exists for project bootstrapping.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.RawDir,
		p.ProcessedDir,
		p.InterimDir,
		p.ExternalDir,
		p.ModelsDir,
		p.FiguresDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
