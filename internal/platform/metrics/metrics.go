package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// Upstream outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeHTTPError   = "http_error"
	OutcomeTransport   = "transport_error"
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeUnsupported = "unsupported"
	OutcomeFailed      = "failed"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_requests_total", Help: "Outbound platform calls by platform, call and outcome."},
		[]string{"platform", "call", "outcome"},
	)
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "upstream_request_duration_seconds", Help: "Outbound platform call latency.", Buckets: prometheus.DefBuckets},
		[]string{"platform", "call"},
	)
	Lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lookups_total", Help: "Stats lookups by platform and outcome."},
		[]string{"platform", "outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Inbound HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "Inbound HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamLatency, Lookups, HTTPRequests, HTTPLatency)
}

// ObserveUpstream records one outbound call.
func ObserveUpstream(platform, call, outcome string, took time.Duration) {
	UpstreamRequests.WithLabelValues(platform, call, outcome).Inc()
	UpstreamLatency.WithLabelValues(platform, call).Observe(took.Seconds())
}

// Middleware records per-route request counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPLatency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
