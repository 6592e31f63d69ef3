package metric

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "quill"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Console metrics
	ConsoleSessions   *prometheus.CounterVec
	CandidatesSkipped *prometheus.CounterVec
	ConsoleFailures   *prometheus.CounterVec

	// Site metrics
	SitePosts    prometheus.Gauge
	SiteCommands prometheus.Gauge
	ScanDuration prometheus.Histogram
}

// NewRegistry creates a registry with all Quill metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		ConsoleSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "sessions_total",
			Help:      "Interactive console sessions launched, by shell.",
		}, []string{"shell"}),
		CandidatesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "candidates_skipped_total",
			Help:      "Shell candidates skipped during automatic selection because their backend is unavailable.",
		}, []string{"shell"}),
		ConsoleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "failures_total",
			Help:      "Console invocations that failed before or during launch, by reason.",
		}, []string{"reason"}),
		SitePosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "site",
			Name:      "posts",
			Help:      "Posts found by the last content scan.",
		}),
		SiteCommands: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "site",
			Name:      "commands",
			Help:      "Command plugins exposed to the console.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "site",
			Name:      "scan_duration_seconds",
			Help:      "Time spent scanning the content directory.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	r.registry.MustRegister(
		r.ConsoleSessions,
		r.CandidatesSkipped,
		r.ConsoleFailures,
		r.SitePosts,
		r.SiteCommands,
		r.ScanDuration,
		NewCollector(),
		collectors.NewGoCollector(),
	)

	return r
}

// Gatherer exposes the underlying registry for gathering and tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically (temp file + rename).
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
