package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"grok2api/keygate/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/trace"
)

// Outcome labels for decisions that did not fail.
const (
	OutcomeAccepted = "accepted"
	OutcomeOpen     = "open"
)

// Recorder receives the outcome of every verification made by Middleware.
type Recorder interface {
	RecordDecision(tier Tier, outcome string)
}

// Middleware is HTTP middleware that enforces a tier on each request.
type Middleware struct {
	verifier *Verifier
	logger   *slog.Logger
	recorder Recorder
}

// NewMiddleware creates tier-enforcing middleware. logger and recorder may be nil.
func NewMiddleware(verifier *Verifier, logger *slog.Logger, recorder Recorder) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{
		verifier: verifier,
		logger:   logger.With("component", "auth"),
		recorder: recorder,
	}
}

// Require wraps an HTTP handler so it only runs when the request passes tier.
// The resulting Decision is available to the handler via DecisionFromContext.
func (m *Middleware) Require(tier Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := m.Authenticate(r, tier)
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), decisionKey, decision)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate extracts the bearer credential from r and verifies it for tier.
func (m *Middleware) Authenticate(r *http.Request, tier Tier) (Decision, error) {
	cred := BearerCredential(r)
	decision, err := m.verifier.Verify(tier, cred)

	outcome := Outcome(decision, err)
	if m.recorder != nil {
		m.recorder.RecordDecision(tier, outcome)
	}
	tracing.SetAuthAttributes(trace.SpanFromContext(r.Context()), string(tier), outcome, decision.Match.String())

	if err != nil {
		m.logger.WarnContext(r.Context(), "authentication failed",
			"tier", tier,
			"reason", outcome,
			"bearer_present", cred.Present,
			"remote_addr", r.RemoteAddr,
			"path", r.URL.Path,
		)
		return decision, err
	}

	m.logger.DebugContext(r.Context(), "authentication passed",
		"tier", tier,
		"outcome", outcome,
		"match", decision.Match.String(),
		"path", r.URL.Path,
	)
	return decision, nil
}

// Outcome returns a short label for the result of a verification.
func Outcome(decision Decision, err error) string {
	if err != nil {
		if kind, ok := KindOf(err); ok {
			return kind.String()
		}
		return "error"
	}
	if !decision.Authenticated {
		return OutcomeOpen
	}
	return OutcomeAccepted
}

// BearerCredential extracts the token from an "Authorization: Bearer <token>"
// header. Everything after the first space is the token, unmodified. A
// missing header, another scheme, or an empty token yield NoCredential.
func BearerCredential(r *http.Request) Credential {
	header := r.Header.Get("Authorization")
	if header == "" {
		return NoCredential
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return NoCredential
	}

	if token == "" {
		return NoCredential
	}
	return Bearer(token)
}

type errorBody struct {
	Detail string `json:"detail"`
}

// WriteError renders err as a JSON error response. Authentication failures
// become 401 with a WWW-Authenticate header; anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Detail: "Internal Server Error"}

	var authErr *Error
	if errors.As(err, &authErr) {
		for name, values := range authErr.Header() {
			for _, value := range values {
				w.Header().Add(name, value)
			}
		}
		status = authErr.StatusCode()
		body.Detail = authErr.Detail()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type contextKey string

const decisionKey contextKey = "auth_decision"

// DecisionFromContext returns the Decision stored by Middleware.Require.
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	decision, ok := ctx.Value(decisionKey).(Decision)
	return decision, ok
}
