package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "goleiroon",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goleiroon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	convocationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "convocations",
			Name:      "transitions_total",
			Help:      "Convocation status transitions by target status.",
		},
		[]string{"status"},
	)

	coinMovements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "coins",
			Name:      "movements_total",
			Help:      "Ledger movements by kind.",
		},
		[]string{"kind"},
	)

	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Job runs by job name and outcome.",
		},
		[]string{"job", "success"},
	)

	jobItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "jobs",
			Name:      "items_total",
			Help:      "Items processed by jobs.",
		},
		[]string{"job", "success"},
	)

	pushSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "goleiroon",
			Subsystem: "push",
			Name:      "notifications_total",
			Help:      "Push notifications handed to the Expo API by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		convocationTransitions,
		coinMovements,
		jobRuns,
		jobItems,
		pushSent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordConvocationTransition(status string) {
	convocationTransitions.WithLabelValues(status).Inc()
}

func RecordCoinMovement(kind string) {
	coinMovements.WithLabelValues(kind).Inc()
}

func RecordJobRun(job string, success bool) {
	jobRuns.WithLabelValues(job, boolLabel(success)).Inc()
}

func RecordJobItem(job string, success bool) {
	jobItems.WithLabelValues(job, boolLabel(success)).Inc()
}

func RecordPush(status string) {
	pushSent.WithLabelValues(status).Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
