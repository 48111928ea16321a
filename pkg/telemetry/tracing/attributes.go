package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. HTTP keys follow OpenTelemetry semantic conventions;
// keygate-specific keys live under the "keygate." namespace.
const (
	AttrHTTPMethod     = "http.request.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.response.status_code"

	AttrRequestID = "keygate.request_id"

	AttrAuthTier    = "keygate.auth.tier"
	AttrAuthOutcome = "keygate.auth.outcome"
	AttrAuthMatch   = "keygate.auth.match"
)

// SetAuthAttributes records the outcome of a credential check on span.
// Credentials themselves are never attached.
//
//	SetAuthAttributes(span, "admin", "accepted", "hashed")
func SetAuthAttributes(span trace.Span, tier, outcome, match string) {
	span.SetAttributes(
		attribute.String(AttrAuthTier, tier),
		attribute.String(AttrAuthOutcome, outcome),
		attribute.String(AttrAuthMatch, match),
	)
}

// SetRequestAttributes sets request-related attributes on a span.
func SetRequestAttributes(span trace.Span, requestID string) {
	if requestID == "" {
		return
	}
	span.SetAttributes(attribute.String(AttrRequestID, requestID))
}
