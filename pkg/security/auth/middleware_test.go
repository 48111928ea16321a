package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordedDecision struct {
	tier    Tier
	outcome string
}

type fakeRecorder struct {
	decisions []recordedDecision
}

func (r *fakeRecorder) RecordDecision(tier Tier, outcome string) {
	r.decisions = append(r.decisions, recordedDecision{tier: tier, outcome: outcome})
}

func TestNewMiddleware(t *testing.T) {
	v := NewVerifier(newMapSource(map[string]any{}))

	mw := NewMiddleware(v, nil, nil)
	if mw == nil {
		t.Fatal("NewMiddleware returned nil")
	}
	if mw.verifier != v {
		t.Error("Verifier not set correctly")
	}
	if mw.logger == nil {
		t.Error("Logger should default to slog.Default")
	}
}

func TestMiddleware_Require(t *testing.T) {
	values := map[string]any{
		SettingAdminKey:  "admin-secret",
		SettingLoginKey:  "login-secret",
		SettingPublicKey: "secret1",
	}

	tests := []struct {
		name           string
		values         map[string]any
		tier           Tier
		authorization  string
		expectedStatus int
		expectedDetail string
		expectedMatch  MatchResult
		expectedAuth   bool
	}{
		{
			name:           "admin key",
			values:         values,
			tier:           TierAdmin,
			authorization:  "Bearer admin-secret",
			expectedStatus: http.StatusOK,
			expectedMatch:  ExactMatch,
			expectedAuth:   true,
		},
		{
			name:           "lowercase scheme",
			values:         values,
			tier:           TierAdmin,
			authorization:  "bearer admin-secret",
			expectedStatus: http.StatusOK,
			expectedMatch:  ExactMatch,
			expectedAuth:   true,
		},
		{
			name:           "derived public token on admin tier",
			values:         values,
			tier:           TierAdmin,
			authorization:  "Bearer " + secret1Token,
			expectedStatus: http.StatusOK,
			expectedMatch:  HashedMatch,
			expectedAuth:   true,
		},
		{
			name:           "missing header",
			values:         values,
			tier:           TierAdmin,
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing authentication token",
		},
		{
			name:           "basic scheme counts as missing",
			values:         values,
			tier:           TierAdmin,
			authorization:  "Basic YWRtaW46c2VjcmV0",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing authentication token",
		},
		{
			name:           "token without scheme counts as missing",
			values:         values,
			tier:           TierAdmin,
			authorization:  "admin-secret",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Missing authentication token",
		},
		{
			name:           "wrong token",
			values:         values,
			tier:           TierAdmin,
			authorization:  "Bearer nope",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid authentication token",
		},
		{
			name:           "open admin tier",
			values:         map[string]any{},
			tier:           TierAdmin,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "login key",
			values:         values,
			tier:           TierLogin,
			authorization:  "Bearer login-secret",
			expectedStatus: http.StatusOK,
			expectedMatch:  ExactMatch,
			expectedAuth:   true,
		},
		{
			name:           "login not configured",
			values:         map[string]any{SettingLoginKey: ""},
			tier:           TierLogin,
			authorization:  "Bearer login-secret",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "App key is not configured",
		},
		{
			name:           "admin key after two spaces",
			values:         values,
			tier:           TierAdmin,
			authorization:  "Bearer  admin-secret",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid authentication token",
		},
		{
			name:           "public disabled",
			values:         map[string]any{},
			tier:           TierPublic,
			authorization:  "Bearer secret1",
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Public access is disabled",
		},
		{
			name:           "public derived token",
			values:         values,
			tier:           TierPublic,
			authorization:  "Bearer " + secret1Token,
			expectedStatus: http.StatusOK,
			expectedMatch:  HashedMatch,
			expectedAuth:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			mw := NewMiddleware(NewVerifier(newMapSource(tt.values)), nil, rec)

			var contextChecked bool
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				decision, ok := DecisionFromContext(r.Context())
				if !ok {
					t.Error("Expected decision in context, got none")
				}
				if decision.Tier != tt.tier {
					t.Errorf("decision.Tier = %q, want %q", decision.Tier, tt.tier)
				}
				if decision.Authenticated != tt.expectedAuth {
					t.Errorf("decision.Authenticated = %v, want %v", decision.Authenticated, tt.expectedAuth)
				}
				if decision.Match != tt.expectedMatch {
					t.Errorf("decision.Match = %v, want %v", decision.Match, tt.expectedMatch)
				}
				contextChecked = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rr := httptest.NewRecorder()

			mw.Require(tt.tier)(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			if len(rec.decisions) != 1 || rec.decisions[0].tier != tt.tier {
				t.Errorf("recorded decisions = %+v, want one for tier %q", rec.decisions, tt.tier)
			}

			if tt.expectedStatus == http.StatusOK {
				if !contextChecked {
					t.Error("Handler was not called")
				}
				return
			}

			if contextChecked {
				t.Error("Handler should not be called on failure")
			}
			if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("WWW-Authenticate = %q, want %q", got, "Bearer")
			}
			if got := rr.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", got)
			}

			var body struct {
				Detail string `json:"detail"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Detail != tt.expectedDetail {
				t.Errorf("detail = %q, want %q", body.Detail, tt.expectedDetail)
			}
		})
	}
}

func TestBearerCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Credential
	}{
		{name: "no header", header: "", want: NoCredential},
		{name: "bearer token", header: "Bearer abc", want: Bearer("abc")},
		{name: "uppercase scheme", header: "BEARER abc", want: Bearer("abc")},
		{name: "extra spaces kept", header: "Bearer  abc ", want: Bearer(" abc ")},
		{name: "blank token", header: "Bearer   ", want: Bearer("  ")},
		{name: "empty token", header: "Bearer ", want: NoCredential},
		{name: "scheme only", header: "Bearer", want: NoCredential},
		{name: "other scheme", header: "Token abc", want: NoCredential},
		{name: "derived token", header: "Bearer " + secret1Token, want: Bearer(secret1Token)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := BearerCredential(req); got != tt.want {
				t.Errorf("BearerCredential() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		decision Decision
		err      error
		want     string
	}{
		{name: "accepted", decision: Decision{Authenticated: true}, want: OutcomeAccepted},
		{name: "open", decision: Decision{}, want: OutcomeOpen},
		{name: "missing", err: ErrMissingCredential, want: "missing_credential"},
		{name: "invalid", err: ErrInvalidCredential, want: "invalid_credential"},
		{name: "not configured", err: ErrNotConfigured, want: "not_configured"},
		{name: "disabled", err: ErrAccessDisabled, want: "access_disabled"},
		{name: "other error", err: ErrUnknownTier, want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.decision, tt.err); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteError_NonAuthError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, ErrUnknownTier)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") != "" {
		t.Error("WWW-Authenticate should not be set for non-auth errors")
	}
}

func TestError_Contract(t *testing.T) {
	tests := []struct {
		err    *Error
		detail string
	}{
		{ErrMissingCredential, "Missing authentication token"},
		{ErrInvalidCredential, "Invalid authentication token"},
		{ErrNotConfigured, "App key is not configured"},
		{ErrAccessDisabled, "Public access is disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if tt.err.Error() != tt.detail {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.detail)
			}
			if tt.err.StatusCode() != http.StatusUnauthorized {
				t.Errorf("StatusCode() = %d, want 401", tt.err.StatusCode())
			}
			if got := tt.err.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("Header WWW-Authenticate = %q, want Bearer", got)
			}
			kind, ok := KindOf(tt.err)
			if !ok || kind != tt.err.Kind {
				t.Errorf("KindOf() = %v, %v", kind, ok)
			}
		})
	}
}
