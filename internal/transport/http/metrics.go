package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appdoc_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route.",
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"route", "method", "status"})

	responseBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "appdoc_http_response_bytes",
		Help:    "Size of HTTP response bodies by route.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"route"})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "appdoc_http_in_flight_requests",
		Help: "Requests currently being served.",
	})
)

// MetricsMiddleware records latency and response size per chi route pattern.
// Requests that match no route share the "unmatched" label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := routeLabel(r)
		requestDuration.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Observe(time.Since(start).Seconds())
		responseBytes.WithLabelValues(route).Observe(float64(ww.BytesWritten()))
	})
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
