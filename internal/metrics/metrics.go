// Package metrics holds the Prometheus collectors shared by the scan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config load outcomes.
const (
	LoadCached     = "cached"
	LoadProject    = "project"
	LoadDefault    = "default"
	LoadParseError = "parse_error"
)

// Scan results.
const (
	ScanClean    = "clean"
	ScanFindings = "findings"
	ScanEngine   = "engine_error"
)

var (
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symjshint_scans_total",
		Help: "Total number of document scans by result.",
	}, []string{"engine", "result"})

	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "symjshint_scan_seconds",
		Help:    "Time spent scanning one document, including config resolution.",
		Buckets: prometheus.DefBuckets,
	}, []string{"engine"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symjshint_diagnostics_total",
		Help: "Total number of diagnostics produced by severity.",
	}, []string{"severity"})

	ConfigLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "symjshint_config_loads_total",
		Help: "Total number of project configuration resolutions by outcome.",
	}, []string{"outcome"})

	ConfigInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "symjshint_config_invalidations_total",
		Help: "Total number of times the cached project configuration was invalidated.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "symjshint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
