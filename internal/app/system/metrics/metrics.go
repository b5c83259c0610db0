// Package metrics provides Prometheus instrumentation for the dashboard:
// panel load outcomes, calls to the analytics backend, and inbound HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stratametrics"

// Panel load outcomes.
const (
	OutcomeReady     = "ready"
	OutcomeEmpty     = "empty"
	OutcomeDiscarded = "discarded"
)

var (
	// PanelLoadsTotal counts settled panel loads by panel and outcome.
	PanelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panel_loads_total",
			Help:      "Panel loads by panel name and outcome (ready, empty, discarded).",
		},
		[]string{"panel", "outcome"},
	)

	// PanelLoadDuration observes how long a panel took to settle.
	PanelLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "panel_load_duration_seconds",
			Help:      "Time from mount until a panel settled.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"panel"},
	)

	// BackendRequestsTotal counts calls to the analytics backend by endpoint
	// and result (ok, transport, status, payload).
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Analytics backend requests by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	// BackendRequestDuration observes backend request latency.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Analytics backend request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// BackendUp is 1 when the last backend probe succeeded, 0 otherwise.
	BackendUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backend_up",
		Help:      "Whether the last analytics backend probe succeeded.",
	})

	// HTTPRequestsTotal counts inbound HTTP requests by method, route, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method, route pattern, and status class.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes inbound request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(
		PanelLoadsTotal,
		PanelLoadDuration,
		BackendRequestsTotal,
		BackendRequestDuration,
		BackendUp,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ObservePanel records one settled panel load.
func ObservePanel(panel, outcome string, elapsed time.Duration) {
	PanelLoadsTotal.WithLabelValues(panel, outcome).Inc()
	if outcome != OutcomeDiscarded {
		PanelLoadDuration.WithLabelValues(panel).Observe(elapsed.Seconds())
	}
}

// ObserveBackend records one backend request.
func ObserveBackend(endpoint, result string, elapsed time.Duration) {
	BackendRequestsTotal.WithLabelValues(endpoint, result).Inc()
	BackendRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// SetBackendUp records the result of a backend probe.
func SetBackendUp(up bool) {
	if up {
		BackendUp.Set(1)
		return
	}
	BackendUp.Set(0)
}

// Middleware records request counts and latency using the chi route pattern
// as the route label, so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, statusBucket(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func statusBucket(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return strconv.Itoa(code)
	}
}
