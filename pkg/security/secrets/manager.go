package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ErrSecretNotFound is returned when no provider holds a secret.
var ErrSecretNotFound = errors.New("secret not found")

// secretRefRegex matches ${secret:name} patterns in configuration values.
var secretRefRegex = regexp.MustCompile(`\$\{secret:([^}]+)\}`)

// Manager resolves secrets through a list of providers in priority order.
type Manager struct {
	providers []SecretProvider
	logger    *slog.Logger
}

// NewManager creates a secret manager. Providers are tried in the order
// given; the first one that supports a secret and returns it wins.
func NewManager(logger *slog.Logger, providers ...SecretProvider) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		providers: providers,
		logger:    logger.With("component", "secrets"),
	}
}

// GetSecret retrieves a secret from the first provider that supports it.
func (m *Manager) GetSecret(ctx context.Context, name string) (string, error) {
	var lastErr error
	for _, provider := range m.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			lastErr = err
			m.logger.Debug("provider failed to get secret",
				"provider", provider.Provider(),
				"name", redactSecretName(name),
				"error", err,
			)
			continue
		}

		m.logger.Debug("secret retrieved",
			"provider", provider.Provider(),
			"name", redactSecretName(name),
		)
		return value, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", name, lastErr)
	}
	return "", fmt.Errorf("%w: %q (no provider supports this secret)", ErrSecretNotFound, name)
}

// HasReferences reports whether input contains a ${secret:name} reference.
func HasReferences(input string) bool {
	return secretRefRegex.MatchString(input)
}

// ResolveReferences replaces every ${secret:name} pattern with the secret's
// value. Any unresolved reference fails the whole call, so a half-resolved
// credential is never returned.
func (m *Manager) ResolveReferences(ctx context.Context, input string) (string, error) {
	var errs []string

	output := secretRefRegex.ReplaceAllStringFunc(input, func(match string) string {
		name := strings.TrimSpace(secretRefRegex.FindStringSubmatch(match)[1])
		value, err := m.GetSecret(ctx, name)
		if err != nil {
			errs = append(errs, err.Error())
			return match
		}
		return value
	})

	if len(errs) > 0 {
		return "", fmt.Errorf("failed to resolve secret references: %s", strings.Join(errs, "; "))
	}
	return output, nil
}

// redactSecretName shortens a secret name for logging.
func redactSecretName(name string) string {
	if len(name) <= 4 {
		return "***"
	}
	return name[:2] + "..." + name[len(name)-2:]
}
