package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the service
type Metrics struct {
	NotesCreated         prometheus.Counter
	NoteCreationDuration prometheus.Histogram
	ErrorCounter         *prometheus.CounterVec
	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	RequestCounter       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// NewMetrics creates a new metrics instance registered on the default registry
func NewMetrics(serviceName string) *Metrics {
	return NewMetricsWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates a new metrics instance on a custom registerer
func NewMetricsWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		NotesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "notes_created_total",
				Help:      "Total number of sales notes created",
			},
		),
		NoteCreationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "note_creation_duration_seconds",
				Help:      "Time spent creating a sales note end to end",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ErrorCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "errors_total",
				Help:      "Total number of errors by operation",
			},
			[]string{"operation"},
		),
		NotificationsSent: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "notifications_sent_total",
				Help:      "Total number of notification emails handed to the channel",
			},
		),
		NotificationsFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "notifications_failed_total",
				Help:      "Total number of notification deliveries that failed",
			},
		),
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "notasventa",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware returns an HTTP middleware that records request metrics
func HTTPMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start).Seconds()
			m.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			m.RequestCounter.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		})
	}
}
