// Package metrics exposes keygate's Prometheus metrics.
//
// A Collector owns a dedicated registry holding:
//
//   - keygate_auth_decisions_total{tier,outcome}
//   - keygate_auth_tier_state{tier,state}
//   - keygate_config_reloads_total{trigger,result}
//   - keygate_config_version, keygate_config_last_reload_timestamp_seconds
//   - keygate_http_requests_total{route,method,code}
//   - keygate_http_request_duration_seconds{route,method}
//   - keygate_http_requests_in_flight
//
// plus the standard Go runtime and process collectors. Label values are
// drawn from fixed sets (tier names, outcome kinds, registered routes), so
// cardinality is bounded.
package metrics
