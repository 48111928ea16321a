package metrics

import (
	"net/http"

	"grok2api/keygate/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics tracks HTTP request handling.
//
// Metrics:
//   - keygate_http_requests_total: requests by route, method, and status code
//   - keygate_http_request_duration_seconds: latency by route and method
//   - keygate_http_requests_in_flight: requests currently being served
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method, and status code",
			},
			[]string{"route", "method", "code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"route", "method"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "HTTP requests currently being served",
			},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.requestDuration, hm.inFlight)

	return hm
}

// Instrument wraps h with promhttp instrumentation curried to route.
func (hm *HTTPMetrics) Instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}

	return promhttp.InstrumentHandlerInFlight(hm.inFlight,
		promhttp.InstrumentHandlerDuration(hm.requestDuration.MustCurryWith(labels),
			promhttp.InstrumentHandlerCounter(hm.requestsTotal.MustCurryWith(labels), h),
		),
	)
}
