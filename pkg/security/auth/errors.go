package auth

import (
	"errors"
	"net/http"
)

// ErrorKind classifies an authentication failure.
type ErrorKind int

const (
	// KindMissingCredential means no token was presented where one is required.
	KindMissingCredential ErrorKind = iota + 1
	// KindInvalidCredential means the token matched no accepted form.
	KindInvalidCredential
	// KindNotConfigured means the tier requires a secret that is not set.
	KindNotConfigured
	// KindAccessDisabled means the tier is turned off by configuration.
	KindAccessDisabled
)

// String returns a stable snake_case name, suitable for metric labels.
func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindNotConfigured:
		return "not_configured"
	case KindAccessDisabled:
		return "access_disabled"
	default:
		return "unknown"
	}
}

// Error is an authentication failure. All kinds are terminal and map to
// HTTP 401.
type Error struct {
	Kind ErrorKind
}

var (
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrNotConfigured     = &Error{Kind: KindNotConfigured}
	ErrAccessDisabled    = &Error{Kind: KindAccessDisabled}
)

// ErrUnknownTier is returned for a tier name that does not exist. It is a
// programming or routing error, not an authentication failure.
var ErrUnknownTier = errors.New("unknown tier")

// Error returns the human-readable detail message.
func (e *Error) Error() string {
	return e.Detail()
}

// Detail returns the message rendered to clients.
func (e *Error) Detail() string {
	switch e.Kind {
	case KindMissingCredential:
		return "Missing authentication token"
	case KindInvalidCredential:
		return "Invalid authentication token"
	case KindNotConfigured:
		return "App key is not configured"
	case KindAccessDisabled:
		return "Public access is disabled"
	default:
		return "Authentication failed"
	}
}

// StatusCode returns the HTTP status for the failure.
func (e *Error) StatusCode() int {
	return http.StatusUnauthorized
}

// Header returns the response headers that accompany the failure.
func (e *Error) Header() http.Header {
	h := make(http.Header)
	h.Set("WWW-Authenticate", "Bearer")
	return h
}

// KindOf extracts the ErrorKind from err, if err is an authentication failure.
func KindOf(err error) (ErrorKind, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind, true
	}
	return 0, false
}
