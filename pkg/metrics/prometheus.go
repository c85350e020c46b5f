package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the global metrics container for the engine.
type Metrics struct {
	// Query metrics
	QueriesTotal    *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	QueriesInFlight prometheus.Gauge

	// Engine internals
	BlockSize        *prometheus.HistogramVec
	HeapRebuildsTotal *prometheus.CounterVec
	StalePopsTotal    *prometheus.CounterVec
	GraphVerticesTotal *prometheus.HistogramVec
	GraphEdgesTotal    *prometheus.HistogramVec

	// System metrics
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics initializes the metrics container under the given namespace
// and subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		QueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of SSSP queries served",
			},
			[]string{"engine", "status"},
		),

		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Duration of a single Query call",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"engine"},
		),

		QueriesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_in_flight",
				Help:      "Current number of queries being processed",
			},
		),

		BlockSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "block_size",
				Help:      "Block size B derived from log2(n) for a query",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512},
			},
			[]string{"engine"},
		),

		HeapRebuildsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "heap_rebuilds_total",
				Help:      "Total number of lazy block-heap rebuilds triggered by stale entries",
			},
			[]string{"engine"},
		),

		StalePopsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stale_pops_total",
				Help:      "Total number of stale heap entries discarded on pop",
			},
			[]string{"engine"},
		),

		GraphVerticesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_vertices_total",
				Help:      "Number of vertices in queried graphs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"engine"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of edges in queried graphs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
			},
			[]string{"engine"},
		),

		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_info",
				Help:      "Engine build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the global metrics container, initializing it with the
// engine's default namespace if it has not been set up yet.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("bmssp", "engine")
	}
	return defaultMetrics
}

// RecordQuery records the outcome and duration of a Query call.
func (m *Metrics) RecordQuery(engine string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}

	m.QueriesTotal.WithLabelValues(engine, status).Inc()
	m.QueryDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// RecordBlockSize records the block size B used by a query.
func (m *Metrics) RecordBlockSize(engine string, blockSize int) {
	m.BlockSize.WithLabelValues(engine).Observe(float64(blockSize))
}

// RecordHeapRebuild records a lazy block-heap rebuild.
func (m *Metrics) RecordHeapRebuild(engine string) {
	m.HeapRebuildsTotal.WithLabelValues(engine).Inc()
}

// RecordStalePop records a stale heap entry discarded on pop.
func (m *Metrics) RecordStalePop(engine string) {
	m.StalePopsTotal.WithLabelValues(engine).Inc()
}

// RecordGraphSize records the size of a queried graph.
func (m *Metrics) RecordGraphSize(engine string, vertices, edges int) {
	m.GraphVerticesTotal.WithLabelValues(engine).Observe(float64(vertices))
	m.GraphEdgesTotal.WithLabelValues(engine).Observe(float64(edges))
}

// SetServiceInfo sets the build information gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts an HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write failure is not actionable
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
