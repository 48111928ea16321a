package config

import (
	"context"
	"fmt"

	"grok2api/keygate/pkg/security/secrets"
)

// credentialKeys are the settings whose values may hold ${secret:name}
// references.
var credentialKeys = []string{"app.api_key", "app.app_key", "app.public_key"}

// resolveSecrets replaces secret references in the credential values of
// snap. A reference that cannot be resolved fails the load, so a reload
// keeps the previous snapshot instead of serving a literal "${secret:...}"
// as a key.
func resolveSecrets(snap *Snapshot) error {
	var manager *secrets.Manager

	for _, key := range credentialKeys {
		raw, ok := snap.values[key].(string)
		if !ok || !secrets.HasReferences(raw) {
			continue
		}

		if manager == nil {
			m, err := newSecretManager(snap.Config.Security.Secrets)
			if err != nil {
				return err
			}
			manager = m
		}

		resolved, err := manager.ResolveReferences(context.Background(), raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		snap.values[key] = resolved
	}

	snap.syncApp()
	return nil
}

func newSecretManager(cfg SecretsConfig) (*secrets.Manager, error) {
	providers := []secrets.SecretProvider{secrets.NewEnvProvider(cfg.EnvPrefix)}

	if cfg.Dir != "" {
		fileProvider, err := secrets.NewFileProvider(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("security.secrets.dir: %w", err)
		}
		providers = append(providers, fileProvider)
	}

	return secrets.NewManager(nil, providers...), nil
}
