package metrics

import (
	"net/http"

	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns keygate's Prometheus registry and every metric in it.
// It satisfies auth.Recorder and config.ReloadObserver, so the verifier
// middleware and the configuration store report into it directly.
//
// When metrics are disabled every Record method is a no-op and
// InstrumentHandler returns the handler unchanged.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	authMetrics   *AuthMetrics
	reloadMetrics *ReloadMetrics
	httpMetrics   *HTTPMetrics
}

var (
	_ auth.Recorder         = (*Collector)(nil)
	_ config.ReloadObserver = (*Collector)(nil)
)

// NewCollector creates a collector with the given configuration. If
// registry is nil a fresh registry is created; the Go runtime and process
// collectors are registered alongside keygate's own metrics.
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = append([]float64(nil), config.DefaultRequestDurationBuckets...)
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c.authMetrics = NewAuthMetrics(cfg, registry)
	c.reloadMetrics = NewReloadMetrics(cfg, registry)
	c.httpMetrics = NewHTTPMetrics(cfg, registry)

	return c
}

// RecordDecision counts one verification outcome for tier.
func (c *Collector) RecordDecision(tier auth.Tier, outcome string) {
	if !c.config.Enabled {
		return
	}
	c.authMetrics.RecordDecision(string(tier), outcome)
}

// RecordReload counts one configuration reload attempt.
func (c *Collector) RecordReload(trigger, result string) {
	if !c.config.Enabled {
		return
	}
	c.reloadMetrics.RecordReload(trigger, result)
}

// ObserveSnapshot publishes the state of a freshly loaded snapshot.
func (c *Collector) ObserveSnapshot(snap *config.Snapshot) {
	if !c.config.Enabled || snap == nil {
		return
	}
	c.reloadMetrics.ObserveSnapshot(snap)
	c.authMetrics.ObserveTiers(snap)
}

// InstrumentHandler wraps h to count requests and observe their latency
// under the given route label.
func (c *Collector) InstrumentHandler(route string, h http.Handler) http.Handler {
	if !c.config.Enabled {
		return h
	}
	return c.httpMetrics.Instrument(route, h)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
