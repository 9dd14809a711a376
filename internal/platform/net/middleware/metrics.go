package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	phttp "robots/internal/platform/net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests no route claimed so raw paths never become labels
const unmatchedRoute = "unmatched"

// Metrics holds the HTTP collectors for one registry
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
	handler  http.Handler
}

// NewMetrics registers the HTTP collectors plus any extra collectors on reg
// nil reg means a fresh registry
func NewMetrics(reg *prometheus.Registry, extra ...prometheus.Collector) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests currently being served",
		}),
	}

	cs := []prometheus.Collector{m.requests, m.duration, m.inflight}
	for _, c := range append(cs, extra...) {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler { return m.handler }

// Middleware counts and times requests labelled by route template
// the route is read after serving since chi fills it while routing
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inflight.Inc()
		defer m.inflight.Dec()

		cw := &captureWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(cw, r)

		route := phttp.RoutePattern(r)
		if route == "" {
			route = unmatchedRoute
		}
		method := strings.ToUpper(r.Method)
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(method, route, strconv.Itoa(cw.code())).Inc()
	})
}
