package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Mutations
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_mutations_total",
			Help: "Successful mutations by entity and action",
		},
		[]string{"entity", "action"}, // user|contact|address, create|update|delete|login|logout
	)
	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Rejected login attempts",
		},
	)

	// Audit queue
	AuditFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_failed_total",
			Help: "Audit entries that could not be queued or written",
		},
		[]string{"reason"}, // queue_full|write_error
	)
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

// Init registers the collectors once; later calls are no-ops.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(HTTPLatency)
		prometheus.MustRegister(MutationsTotal)
		prometheus.MustRegister(LoginFailures)
		prometheus.MustRegister(AuditFailed)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}
