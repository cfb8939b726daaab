package catalog

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"datakit/internal/config"
	"datakit/internal/files"
	"datakit/internal/loaders"
	"datakit/internal/metrics"
	"datakit/pkg/contracts/domain"
)

const bytesPerMB = 1024 * 1024

// Catalog is an in-memory index of the data files under one project root
type Catalog struct {
	root       string
	dataDir    string
	subdirs    []string
	extensions []string

	discovery *files.Discovery
	registry  *loaders.Registry
	logger    *slog.Logger
	metrics   *metrics.Catalog

	entries  []domain.FileRecord
	lastScan *domain.ScanReport
}

// Option configures a Catalog
type Option func(*Catalog)

// WithLogger sets the logger used for scan, lookup and load messages
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records catalog activity on m
func WithMetrics(m *metrics.Catalog) Option {
	return func(c *Catalog) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithDefaults replaces the subdirectories and extensions used when Scan is
// called without arguments. Empty lists keep the built-in defaults.
func WithDefaults(subdirs, extensions []string) Option {
	return func(c *Catalog) {
		if len(subdirs) > 0 {
			c.subdirs = append([]string(nil), subdirs...)
		}
		if len(extensions) > 0 {
			c.extensions = config.NormalizeExtensions(extensions)
		}
	}
}

// WithLoaders replaces the extension to loader dispatch table
func WithLoaders(r *loaders.Registry) Option {
	return func(c *Catalog) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithDataDir sets the data directory, relative to the root unless absolute
func WithDataDir(dir string) Option {
	return func(c *Catalog) {
		if dir != "" {
			c.dataDir = dir
		}
	}
}

// New creates an empty catalog rooted at root
func New(root string, opts ...Option) (*Catalog, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	c := &Catalog{
		root:       absRoot,
		dataDir:    "data",
		subdirs:    config.DefaultSubdirs(),
		extensions: config.DefaultExtensions(),
		registry:   loaders.Default(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !filepath.IsAbs(c.dataDir) {
		c.dataDir = filepath.Join(c.root, c.dataDir)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewCatalog()
	}
	c.discovery = files.NewDiscovery(c.dataDir)

	return c, nil
}

// NewFromConfig creates an empty catalog from the catalog section of cfg.
// Explicit options are applied after the configured ones.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Catalog, error) {
	base := []Option{
		WithDataDir(cfg.Catalog.DataDir),
		WithDefaults(cfg.Catalog.Subdirs, cfg.Catalog.Extensions),
	}
	return New(cfg.Catalog.Root, append(base, opts...)...)
}

// Open creates a catalog and scans it with the default settings
func Open(root string, opts ...Option) (*Catalog, error) {
	c, err := New(root, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := c.Scan(nil, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// Root returns the absolute project root
func (c *Catalog) Root() string {
	return c.root
}

// DataDir returns the absolute directory holding the scanned subdirectories
func (c *Catalog) DataDir() string {
	return c.dataDir
}

// Metrics returns the collectors updated by this catalog
func (c *Catalog) Metrics() *metrics.Catalog {
	return c.metrics
}

// Extensions returns the default extension allow-list
func (c *Catalog) Extensions() []string {
	return append([]string(nil), c.extensions...)
}

// Entries returns a copy of the current table
func (c *Catalog) Entries() []domain.FileRecord {
	return append([]domain.FileRecord{}, c.entries...)
}

// Len returns the number of entries in the current table
func (c *Catalog) Len() int {
	return len(c.entries)
}

// LastScan returns the report of the most recent successful scan
func (c *Catalog) LastScan() (domain.ScanReport, bool) {
	if c.lastScan == nil {
		return domain.ScanReport{}, false
	}
	return *c.lastScan, true
}

// Scan rebuilds the table from the given subdirectories of the data directory,
// keeping files whose extension is in extensions. Nil or empty arguments mean
// the catalog defaults. Missing subdirectories are skipped. Any other
// filesystem error aborts the scan and leaves the previous table in place.
func (c *Catalog) Scan(subdirs, extensions []string) ([]domain.FileRecord, error) {
	if len(subdirs) == 0 {
		subdirs = c.subdirs
	}
	if len(extensions) == 0 {
		extensions = c.extensions
	}
	exts := config.NormalizeExtensions(extensions)

	report := domain.ScanReport{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		Subdirs:    append([]string(nil), subdirs...),
		Extensions: exts,
	}
	logger := c.logger.With(slog.String("scan_id", report.ID))

	records := []domain.FileRecord{}
	for _, sub := range subdirs {
		dir := filepath.Join(c.dataDir, sub)

		info, err := os.Stat(dir)
		if err != nil && !os.IsNotExist(err) {
			logger.Error("Scan failed", slog.String("directory", dir), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if err != nil || !info.IsDir() {
			logger.Debug("Skipping missing subdirectory", slog.String("directory", dir))
			report.Skipped = append(report.Skipped, sub)
			continue
		}

		found, err := c.discovery.FindFiles(sub, exts)
		if err != nil {
			logger.Error("Scan failed", slog.String("directory", dir), slog.String("error", err.Error()))
			return nil, err
		}

		for _, f := range found {
			rec, err := c.record(sub, f)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	report.Duration = time.Since(report.StartedAt)
	report.Files = len(records)

	c.entries = records
	c.lastScan = &report
	c.metrics.ObserveScan(len(records), report.Duration)

	logger.Info("Catalog scanned",
		slog.String("root", c.root),
		slog.Int("files", len(records)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Duration("duration", report.Duration))

	return c.Entries(), nil
}

func (c *Catalog) record(sub string, f files.FileInfo) (domain.FileRecord, error) {
	rel, err := filepath.Rel(c.root, f.Path)
	if err != nil {
		return domain.FileRecord{}, fmt.Errorf("failed to relativize %s: %w", f.Path, err)
	}

	return domain.FileRecord{
		Basename:     strings.TrimSuffix(f.Name, filepath.Ext(f.Name)),
		Filename:     f.Name,
		Directory:    sub,
		Path:         f.Path,
		RelativePath: rel,
		Extension:    f.Ext(),
		SizeMB:       round3(float64(f.Size) / bytesPerMB),
		Modified:     f.ModTime,
	}, nil
}

// ensureScanned runs a default scan when the table is empty
func (c *Catalog) ensureScanned() error {
	if len(c.entries) > 0 {
		return nil
	}
	c.metrics.ImplicitScans.Inc()
	_, err := c.Scan(nil, nil)
	return err
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
