package metrics

import (
	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"

	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics tracks credential verification.
//
// Metrics:
//   - keygate_auth_decisions_total: decisions by tier and outcome
//   - keygate_auth_tier_state: 1 for the current state of each tier
type AuthMetrics struct {
	decisionsTotal *prometheus.CounterVec
	tierState      *prometheus.GaugeVec
}

// NewAuthMetrics creates and registers auth metrics with the provided registry.
func NewAuthMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AuthMetrics {
	am := &AuthMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "auth",
				Name:      "decisions_total",
				Help:      "Credential verification decisions by tier and outcome",
			},
			[]string{"tier", "outcome"},
		),

		tierState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "auth",
				Name:      "tier_state",
				Help:      "Current state of each protection tier (1 for the active state)",
			},
			[]string{"tier", "state"},
		),
	}

	registry.MustRegister(am.decisionsTotal, am.tierState)

	return am
}

// RecordDecision increments the decision counter.
func (am *AuthMetrics) RecordDecision(tier, outcome string) {
	am.decisionsTotal.WithLabelValues(tier, outcome).Inc()
}

// ObserveTiers sets each tier's state as the verifiers would see it in src.
func (am *AuthMetrics) ObserveTiers(src auth.Source) {
	for _, tier := range auth.Tiers() {
		current := auth.StateOf(src, tier)
		for _, state := range auth.TierStates() {
			v := 0.0
			if state == current {
				v = 1
			}
			am.tierState.WithLabelValues(string(tier), string(state)).Set(v)
		}
	}
}
