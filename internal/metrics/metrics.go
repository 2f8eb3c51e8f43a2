// Package metrics exposes prometheus instrumentation for the HTTP surface
// and the recommendation engine stages.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bgr_http_requests_total",
			Help: "HTTP requests by path, method and status.",
		},
		[]string{"path", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bgr_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	engineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bgr_engine_stage_duration_seconds",
			Help:    "Recommendation engine stage latency.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"stage"},
	)
)

// ObserveStage records one engine pipeline stage duration.
func ObserveStage(stage string, d time.Duration) {
	engineStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Middleware records request counts and latencies per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		requestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
