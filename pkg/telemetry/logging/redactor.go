package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// Redacted replaces sensitive values in log output.
const Redacted = "***"

// Redactor scrubs credentials from log attributes. Attributes whose key
// names a secret are replaced outright; other string values are scanned for
// bearer headers and derived public tokens.
type Redactor struct {
	patterns []redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// sensitiveKeys are matched as substrings of lowercased attribute keys.
var sensitiveKeys = []string{
	"password", "passwd", "secret", "token",
	"api_key", "apikey", "app_key", "public_key", "private_key",
	"authorization", "credential",
}

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactPattern{
			{
				regex:       regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bearer " + Redacted,
			},
			{
				regex:       regexp.MustCompile(`public-[0-9a-fA-F]{64}`),
				replacement: "public-" + Redacted,
			},
			{
				regex:       regexp.MustCompile(`(?i)(password|passwd|pwd)[:=]\s*[^\s]+`),
				replacement: "$1=" + Redacted,
			},
		},
	}
}

// ReplaceAttr has the signature of slog.HandlerOptions.ReplaceAttr.
func (r *Redactor) ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); s != "" {
			return slog.String(a.Key, r.RedactString(s))
		}
	}
	return a
}

// RedactString replaces every credential-shaped substring of value.
func (r *Redactor) RedactString(value string) string {
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// IsSensitiveKey reports whether an attribute key names a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
