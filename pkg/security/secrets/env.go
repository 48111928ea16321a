package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix is prepended to secret names to form variable names.
const DefaultEnvPrefix = "KEYGATE_SECRET_"

// EnvProvider loads secrets from environment variables.
//
// Secret names are converted to uppercase environment variable names
// with hyphens replaced by underscores, then prefixed:
//
//	admin-key -> KEYGATE_SECRET_ADMIN_KEY
type EnvProvider struct {
	Prefix string
}

// NewEnvProvider creates a new environment variable secret provider.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{
		Prefix: prefix,
	}
}

// GetSecret retrieves a secret from an environment variable. An unset or
// empty variable is reported as not found.
func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	envVar := p.secretNameToEnvVar(name)

	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("%w in environment: %s (env var: %s)", ErrSecretNotFound, name, envVar)
	}

	return value, nil
}

// Provider returns the provider name.
func (p *EnvProvider) Provider() string {
	return "env"
}

// Supports reports whether the variable for name is set.
func (p *EnvProvider) Supports(name string) bool {
	_, ok := os.LookupEnv(p.secretNameToEnvVar(name))
	return ok
}

func (p *EnvProvider) secretNameToEnvVar(name string) string {
	envVar := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return p.Prefix + envVar
}
