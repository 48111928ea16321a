// Package tracing provides OpenTelemetry distributed tracing for keygate.
//
// Every HTTP request gets a server span, continuing the caller's trace when
// a W3C traceparent header is present. The auth middleware annotates the
// active span with the tier, outcome, and match kind of its decision; the
// presented credential is never attached.
//
// Spans are exported over OTLP gRPC. When tracing is disabled a noop tracer
// is used and the middleware only propagates incoming context.
//
// # Sampling Strategies
//
//   - always: sample all root traces
//   - never: sample no root traces
//   - ratio: sample a fraction of root traces by trace ID
//
// Child spans follow the parent's decision regardless of strategy.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	mux.Handle("/auth/admin", tracer.Middleware("/auth/admin")(handler))
package tracing
