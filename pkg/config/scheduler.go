package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ReloadScheduler reloads a Store on a cron schedule. It complements the
// file watcher on filesystems that do not deliver change notifications,
// such as some network mounts.
type ReloadScheduler struct {
	store    *Store
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewReloadScheduler creates a scheduler for the given cron expression.
func NewReloadScheduler(store *Store, schedule string, logger *slog.Logger) *ReloadScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadScheduler{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "config.scheduler"),
	}
}

// Start begins periodic reloads. The schedule accepts standard five-field
// cron expressions and descriptors such as "@every 30s" or "@hourly".
// An empty schedule is a no-op.
func (s *ReloadScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("reload schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReload); err != nil {
		return fmt.Errorf("failed to schedule reload: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("reload scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *ReloadScheduler) runReload() {
	s.logger.Debug("starting scheduled configuration reload")
	// Errors are logged and counted by the store.
	_ = s.store.Reload(TriggerSchedule)
}

// Stop stops the scheduler and waits for a running reload to complete.
func (s *ReloadScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("reload scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *ReloadScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled reload time, or nil when idle.
func (s *ReloadScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
