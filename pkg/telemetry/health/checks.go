package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grok2api/keygate/pkg/config"
)

// SnapshotProvider returns the active configuration snapshot.
// *config.Store satisfies it.
type SnapshotProvider interface {
	Snapshot() *config.Snapshot
}

// ConfigCheck reports unhealthy until a configuration snapshot is loaded.
func ConfigCheck(store SnapshotProvider) CheckFunc {
	return func(ctx context.Context) error {
		if store == nil || store.Snapshot() == nil {
			return errors.New("configuration not loaded")
		}
		return nil
	}
}

// ConfigFreshnessCheck reports unhealthy when the active snapshot is older
// than maxAge. It is only meaningful with a reload schedule, where a stale
// snapshot means scheduled reloads keep failing.
func ConfigFreshnessCheck(store SnapshotProvider, maxAge time.Duration) CheckFunc {
	return func(ctx context.Context) error {
		snap := store.Snapshot()
		if snap == nil {
			return errors.New("configuration not loaded")
		}
		if age := time.Since(snap.LoadedAt); age > maxAge {
			return fmt.Errorf("configuration version %d is %s old", snap.Version, age.Round(time.Second))
		}
		return nil
	}
}
