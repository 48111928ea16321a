package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Reload triggers, used as metric labels and in log entries.
const (
	TriggerWatch    = "watch"
	TriggerSchedule = "schedule"
	TriggerSignal   = "signal"
	TriggerManual   = "manual"
)

// Reload results.
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// ReloadObserver is notified about every reload attempt.
type ReloadObserver interface {
	RecordReload(trigger, result string)
}

// Store holds the current configuration snapshot and swaps it atomically
// on reload. Readers never block and always see a complete snapshot.
type Store struct {
	path    string
	current atomic.Pointer[Snapshot]
	logger  *slog.Logger

	// mu serializes reloads and guards listeners and observer.
	mu        sync.Mutex
	listeners []func(*Snapshot)
	observer  ReloadObserver
}

// NewStore loads the configuration at path and returns a store holding it.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	snap, err := Load(path)
	if err != nil {
		return nil, err
	}
	return newStore(path, snap, logger), nil
}

// NewStaticStore returns a store that serves snap. Reload re-reads snap.Path,
// so a snapshot without a path reloads to defaults plus environment.
func NewStaticStore(snap *Snapshot, logger *slog.Logger) *Store {
	return newStore(snap.Path, snap, logger)
}

func newStore(path string, snap *Snapshot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:   path,
		logger: logger.With("component", "config.store"),
	}
	snap.Version = 1
	s.current.Store(snap)
	return s
}

// Path returns the configuration file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current snapshot. The result must not be modified.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Config returns the typed configuration of the current snapshot.
func (s *Store) Config() *Config {
	return s.current.Load().Config
}

// GetString reads key from the current snapshot.
func (s *Store) GetString(key, def string) string {
	return s.current.Load().GetString(key, def)
}

// GetBool reads key from the current snapshot.
func (s *Store) GetBool(key string, def bool) bool {
	return s.current.Load().GetBool(key, def)
}

// OnChange registers fn to be called with each new snapshot after a
// successful reload. Listeners run synchronously on the reloading goroutine.
func (s *Store) OnChange(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetObserver sets the observer notified about reload attempts.
func (s *Store) SetObserver(o ReloadObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Reload re-reads the configuration file and replaces the current snapshot.
// On failure the previous snapshot stays in effect and the error is returned.
func (s *Store) Reload(trigger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := Load(s.path)
	if err != nil {
		s.record(trigger, ReloadFailure)
		s.logger.Error("configuration reload failed",
			"trigger", trigger,
			"path", s.path,
			"error", err,
		)
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	prev := s.current.Load()
	snap.Version = prev.Version + 1
	s.current.Store(snap)
	s.record(trigger, ReloadSuccess)

	s.logger.Info("configuration reloaded",
		"trigger", trigger,
		"path", s.path,
		"version", snap.Version,
	)

	for _, fn := range s.listeners {
		fn(snap)
	}
	return nil
}

func (s *Store) record(trigger, result string) {
	if s.observer != nil {
		s.observer.RecordReload(trigger, result)
	}
}
