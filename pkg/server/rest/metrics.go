package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DestinationResolutionsTotal *prometheus.CounterVec
	DestinationSettledNodes     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigatorx_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navigatorx_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		DestinationResolutionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "navigatorx_destination_edge_resolutions_total",
				Help: "Total number of destination edge resolutions by outcome",
			},
			[]string{"outcome"}, // resolved, empty, failed, skipped
		),
		DestinationSettledNodes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "navigatorx_destination_edge_settled_nodes",
				Help:    "Settled nodes of the destination edge search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
	return m
}

func (m *Metrics) ObserveDestinationResolution(outcome string, settledNodes int) {
	m.DestinationResolutionsTotal.WithLabelValues(outcome).Inc()
	m.DestinationSettledNodes.Observe(float64(settledNodes))
}

// PromeHttpMiddleware prometheus http middleware, label path pakai chi route pattern
func PromeHttpMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
