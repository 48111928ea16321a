package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	// PublicTokenPrefix marks the derived form of a public key.
	PublicTokenPrefix = "public-"

	// publicHashMarker must stay in sync with the browser-side hashPublicKey.
	publicHashMarker = "grok2api-public:"
)

// MatchResult is the outcome of comparing a presented token with a secret.
type MatchResult int

const (
	// NoMatch means the token is not accepted.
	NoMatch MatchResult = iota
	// ExactMatch means the token equals the secret.
	ExactMatch
	// HashedMatch means the token equals the derived public token of the secret.
	HashedMatch
)

// String returns the lowercase name of the result.
func (m MatchResult) String() string {
	switch m {
	case ExactMatch:
		return "exact"
	case HashedMatch:
		return "hashed"
	default:
		return "none"
	}
}

// normalizeSecret trims a configured secret and reports whether it is set.
func normalizeSecret(secret string) (string, bool) {
	trimmed := strings.TrimSpace(secret)
	return trimmed, trimmed != ""
}

// HashPublicKey returns the lowercase hex SHA-256 digest used in derived
// public tokens.
func HashPublicKey(secret string) string {
	normalized, _ := normalizeSecret(secret)
	sum := sha256.Sum256([]byte(publicHashMarker + normalized))
	return hex.EncodeToString(sum[:])
}

// PublicToken returns the derived token clients may present instead of the
// raw public key.
func PublicToken(secret string) string {
	return PublicTokenPrefix + HashPublicKey(secret)
}

// Match compares a presented token with a configured secret. An unset
// (empty or whitespace-only) secret never matches.
func Match(presented, secret string) MatchResult {
	normalized, ok := normalizeSecret(secret)
	if !ok {
		return NoMatch
	}

	if tokensEqual(presented, normalized) {
		return ExactMatch
	}

	if strings.HasPrefix(presented, PublicTokenPrefix) &&
		tokensEqual(presented, PublicToken(normalized)) {
		return HashedMatch
	}

	return NoMatch
}

// Matches reports whether presented is accepted for secret in either form.
func Matches(presented, secret string) bool {
	return Match(presented, secret) != NoMatch
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
