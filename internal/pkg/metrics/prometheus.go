package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cloudspend",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "status"},
	)

	// Background job metrics
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Total number of background job runs",
		},
		[]string{"job"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cloudspend",
			Subsystem: "jobs",
			Name:      "run_duration_seconds",
			Help:      "Duration of background job runs in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"job"},
	)

	JobTenantFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "jobs",
			Name:      "tenant_failures_total",
			Help:      "Per-tenant failures during background job runs",
		},
		[]string{"job"},
	)

	// Analytics metrics
	AnomaliesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "analytics",
			Name:      "anomalies_detected_total",
			Help:      "Total number of cost anomalies detected",
		},
		[]string{"severity"},
	)

	// Notification hub metrics
	AlertsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "notify",
			Name:      "alerts_published_total",
			Help:      "Total number of alert messages published to the hub",
		},
		[]string{"kind"},
	)

	HubDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cloudspend",
			Subsystem: "notify",
			Name:      "dropped_messages_total",
			Help:      "Messages evicted from slow subscriber buffers",
		},
	)

	HubSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cloudspend",
			Subsystem: "notify",
			Name:      "subscribers",
			Help:      "Number of live hub subscribers",
		},
	)
)

// Handler returns the Prometheus scrape endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for every HTTP request
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.status)
		httpRequestsTotal.WithLabelValues(r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
