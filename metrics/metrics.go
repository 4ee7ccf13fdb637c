// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the view-factor computations behind it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thermalvf_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thermalvf_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thermalvf_computations_total",
			Help: "Operating points evaluated, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	sweepPoints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thermalvf_sweep_points",
			Help:    "Number of grid cells per sweep request.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(sweepPoints)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveComputation counts one evaluation of operation.
func ObserveComputation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	computationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveSweep records the size of a sweep.
func ObserveSweep(points int) {
	sweepPoints.Observe(float64(points))
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// routeLabel keeps label cardinality bounded: requests that matched a mux
// pattern are labelled by it, everything else is "other".
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "other"
	}
	return r.Pattern
}

// Middleware records request count and duration for each request. It must
// wrap a handler that routes through an http.ServeMux so the matched pattern
// is available after the request is served.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := routeLabel(r)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}
