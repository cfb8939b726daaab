// Package metrics exposes prometheus collectors for catalog activity.
//
// Collectors live on a private registry owned by each Catalog value so that
// several catalogs (and tests) can coexist in one process.
package metrics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Catalog holds the collectors updated by the data catalog
type Catalog struct {
	registry *prometheus.Registry

	ScansTotal    prometheus.Counter
	Files         prometheus.Gauge
	ScanDuration  prometheus.Histogram
	LoadsTotal    *prometheus.CounterVec
	Resolutions   *prometheus.CounterVec
	SearchesTotal prometheus.Counter
	ImplicitScans prometheus.Counter
}

// NewCatalog creates the collectors on a fresh registry
func NewCatalog() *Catalog {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Catalog{
		registry: reg,
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "datakit_catalog_scans_total",
			Help: "Total number of catalog scans",
		}),
		Files: factory.NewGauge(prometheus.GaugeOpts{
			Name: "datakit_catalog_files",
			Help: "Number of files in the catalog after the last scan",
		}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "datakit_catalog_scan_duration_seconds",
			Help:    "Catalog scan duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datakit_catalog_loads_total",
			Help: "Total number of file loads by format and result",
		}, []string{"format", "result"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datakit_catalog_resolutions_total",
			Help: "Total number of basename resolutions by outcome",
		}, []string{"status"}),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "datakit_catalog_searches_total",
			Help: "Total number of catalog searches",
		}),
		ImplicitScans: factory.NewCounter(prometheus.CounterOpts{
			Name: "datakit_catalog_implicit_scans_total",
			Help: "Scans triggered by search or summary on an empty catalog",
		}),
	}
}

// Registry returns the registry holding the collectors
func (m *Catalog) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScan records a completed scan
func (m *Catalog) ObserveScan(files int, elapsed time.Duration) {
	m.ScansTotal.Inc()
	m.Files.Set(float64(files))
	m.ScanDuration.Observe(elapsed.Seconds())
}

// ObserveLoad records a load attempt for a file extension
func (m *Catalog) ObserveLoad(ext string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	format := strings.TrimPrefix(ext, ".")
	if format == "" {
		format = "unknown"
	}
	m.LoadsTotal.WithLabelValues(format, result).Inc()
}

// ObserveResolution records the outcome of a basename lookup
func (m *Catalog) ObserveResolution(status string) {
	m.Resolutions.WithLabelValues(status).Inc()
}

// WriteText writes every collector in the Prometheus text exposition format
func (m *Catalog) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
