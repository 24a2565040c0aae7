// Package metrics provides Prometheus metrics for the SalesDash pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Refresh cycle metrics
	cyclesTotal   prometheus.Counter
	cycleFailures prometheus.Counter
	cycleDuration prometheus.Histogram
	snapshotUnix  prometheus.Gauge

	// Source fetch metrics
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	rowsIngested  *prometheus.GaugeVec

	// Derived output metrics
	anomaliesActive prometheus.Gauge
	underperformers prometheus.Gauge
	repsTracked     prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "salesdash",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cyclesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total number of refresh cycles that completed successfully",
	})

	m.cycleFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycle_failures_total",
		Help:      "Total number of refresh cycles aborted by fetch or parse errors",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycle_duration_seconds",
		Help:      "Histogram of full-cycle duration (fetch through snapshot publish)",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_refresh_unix",
		Help:      "Unix timestamp of the last successfully published snapshot",
	})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_fetch_duration_seconds",
		Help:      "Histogram of per-table CSV fetch duration",
		Buckets:   m.histogramBuckets,
	}, []string{"table"})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_fetch_errors_total",
		Help:      "Total number of per-table fetch or parse errors",
	}, []string{"table"})

	m.rowsIngested = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_rows_ingested",
		Help:      "Rows ingested per table in the latest successful cycle",
	}, []string{"table"})

	m.anomaliesActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "anomalies_active",
		Help:      "Anomalies present in the latest snapshot",
	})

	m.underperformers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "underperforming_reps",
		Help:      "Reps flagged as underperforming in the latest snapshot",
	})

	m.repsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reps_tracked",
		Help:      "Reps present in the latest rep monthly summary",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordCycleSuccess records one successful refresh cycle and its duration.
func RecordCycleSuccess(d time.Duration) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.cyclesTotal.Inc()
	globalManager.cycleDuration.Observe(d.Seconds())
}

// RecordCycleFailure records one aborted refresh cycle.
func RecordCycleFailure() {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.cycleFailures.Inc()
}

// UpdateSnapshotTimestamp sets the publish time of the latest snapshot.
func UpdateSnapshotTimestamp(t time.Time) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.snapshotUnix.Set(float64(t.Unix()))
}

// RecordFetch records the duration of one table fetch.
func RecordFetch(table string, d time.Duration) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.fetchDuration.WithLabelValues(table).Observe(d.Seconds())
}

// RecordFetchError records a fetch/parse failure for a table.
func RecordFetchError(table string) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.WithLabelValues(table).Inc()
}

// UpdateRowsIngested sets the row count ingested for a table.
func UpdateRowsIngested(table string, n int) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.rowsIngested.WithLabelValues(table).Set(float64(n))
}

// UpdateDerivedGauges sets the derived-output gauges for the latest snapshot.
func UpdateDerivedGauges(anomalies, underperformers, reps int) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.anomaliesActive.Set(float64(anomalies))
	globalManager.underperformers.Set(float64(underperformers))
	globalManager.repsTracked.Set(float64(reps))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager == nil || !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
