package tracing

import (
	"context"
	"testing"
	"time"

	"grok2api/keygate/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecordingTracer returns a tracer whose finished spans land in the
// returned recorder.
func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(recorder),
	)
	tracer := NewWithProvider(provider)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, recorder
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test-service"},
		},
		{
			name: "enabled with always sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "always",
				Exporter:    "otlp",
				Endpoint:    "localhost:4317",
				ServiceName: "test-service",
				OTLP:        config.OTLPConfig{Insecure: true, Timeout: time.Second},
			},
			wantEnabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Exporter: "otlp",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
		{
			name: "unsupported exporter",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "always",
				Exporter: "zipkin",
				Endpoint: "localhost:9411",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	tracer := Noop()
	if tracer.Enabled() {
		t.Error("noop tracer should be disabled")
	}

	ctx, span := tracer.Start(context.Background(), "op")
	span.End()

	if TraceID(ctx) != "" || SpanFromContext(ctx).SpanContext().IsValid() {
		t.Error("noop spans should not carry a valid context")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestTracer_Start(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "parent")
	if TraceID(ctx) == "" || !SpanFromContext(ctx).SpanContext().SpanID().IsValid() {
		t.Fatal("expected valid trace and span IDs")
	}
	if SpanFromContext(ctx) != parent {
		t.Error("SpanFromContext did not return the active span")
	}

	_, child := tracer.Start(ctx, "child")
	child.End()
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Parent().SpanID() != spans[1].SpanContext().SpanID() {
		t.Error("child span is not linked to its parent")
	}
}

func TestSetAuthAttributes(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "auth")
	SetAuthAttributes(span, "public", "accepted", "hashed")
	SetRequestAttributes(span, "")
	SetRequestAttributes(span, "req-1")
	span.End()

	attrs := recorder.Ended()[0].Attributes()
	want := map[string]string{
		AttrAuthTier:    "public",
		AttrAuthOutcome: "accepted",
		AttrAuthMatch:   "hashed",
		AttrRequestID:   "req-1",
	}
	for k, v := range want {
		got, ok := attrValue(attrs, k)
		if !ok || got.AsString() != v {
			t.Errorf("attribute %s = %v, want %q", k, got, v)
		}
	}
}
