package metrics

import (
	"grok2api/keygate/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ReloadMetrics tracks configuration reloads.
//
// Metrics:
//   - keygate_config_reloads_total: reload attempts by trigger and result
//   - keygate_config_version: version of the active snapshot
//   - keygate_config_last_reload_timestamp_seconds: load time of the active snapshot
type ReloadMetrics struct {
	reloadsTotal *prometheus.CounterVec
	version      prometheus.Gauge
	lastReload   prometheus.Gauge
}

// NewReloadMetrics creates and registers reload metrics with the provided registry.
func NewReloadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ReloadMetrics {
	rm := &ReloadMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "config",
				Name:      "reloads_total",
				Help:      "Configuration reload attempts by trigger and result",
			},
			[]string{"trigger", "result"},
		),

		version: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "config",
				Name:      "version",
				Help:      "Version of the active configuration snapshot",
			},
		),

		lastReload: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "config",
				Name:      "last_reload_timestamp_seconds",
				Help:      "Unix time the active configuration snapshot was loaded",
			},
		),
	}

	registry.MustRegister(rm.reloadsTotal, rm.version, rm.lastReload)

	return rm
}

// RecordReload increments the reload counter.
func (rm *ReloadMetrics) RecordReload(trigger, result string) {
	rm.reloadsTotal.WithLabelValues(trigger, result).Inc()
}

// ObserveSnapshot publishes the version and load time of snap.
func (rm *ReloadMetrics) ObserveSnapshot(snap *config.Snapshot) {
	rm.version.Set(float64(snap.Version))
	rm.lastReload.Set(float64(snap.LoadedAt.UnixNano()) / 1e9)
}
