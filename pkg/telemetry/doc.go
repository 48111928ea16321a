// Package telemetry groups the observability packages used by keygate.
//
// # Components
//
//   - logging: structured slog logging with credential redaction
//   - metrics: Prometheus metrics for decisions, reloads and HTTP routes
//   - tracing: OpenTelemetry spans per request, exported over OTLP gRPC
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stdout))
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
// Credentials never reach a log line, span attribute or metric label: spans
// and metrics carry only the tier, the outcome and the match kind.
package telemetry
