package telemetry

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SweepMetrics holds the Prometheus metrics published while a sweep is running.
type SweepMetrics struct {
	RunsTotal        *prometheus.CounterVec
	RunsFailed       *prometheus.CounterVec
	RecordsCollected prometheus.Counter
	RunsInProgress   prometheus.Gauge
	RunDuration      *prometheus.HistogramVec
}

// NewSweepMetrics creates and registers the sweep metrics on a fresh registry.
func NewSweepMetrics() (*SweepMetrics, *prometheus.Registry) {
	m := &SweepMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrbench_runs_total",
				Help: "Total number of benchmark runs attempted",
			},
			[]string{"benchmark"},
		),
		RunsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrbench_runs_failed_total",
				Help: "Number of benchmark runs that failed or produced no usable record",
			},
			[]string{"benchmark"},
		),
		RecordsCollected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mrbench_records_collected_total",
				Help: "Number of measurement records successfully collected",
			},
		),
		RunsInProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mrbench_runs_in_progress",
				Help: "Benchmark runs currently executing (0 or 1, runs are sequential)",
			},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mrbench_run_duration_seconds",
				Help:    "Wall-clock duration of benchmark runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"benchmark"},
		),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(m.RunsTotal, m.RunsFailed, m.RecordsCollected, m.RunsInProgress, m.RunDuration)
	return m, reg
}

// StartMetricsServer starts a HTTP server exposing Prometheus metrics in the
// background. Errors are logged, not returned; the metrics endpoint is a
// convenience during long sweeps and must never abort the pipeline.
func StartMetricsServer(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Warn("metrics server stopped", "error", err)
		}
	}()
}
