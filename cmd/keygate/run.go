package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"grok2api/keygate/pkg/cli"
	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"
	"grok2api/keygate/pkg/server"
	"grok2api/keygate/pkg/telemetry/logging"
	"grok2api/keygate/pkg/telemetry/metrics"
	"grok2api/keygate/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the keygate forward-auth server",
	Long: `Start the keygate forward-auth server with the specified configuration.

The server answers GET /auth/admin, /auth/login and /auth/public with 200
and a JSON decision, or 401 with a {"detail": ...} body. Point a reverse
proxy's auth-request hook at the route for the tier it protects.

The configuration is reloaded when the file changes (reload.watch), on
the reload.schedule cron expression, and on SIGHUP.

Examples:
  # Start with defaults and KEYGATE_* environment variables
  keygate run

  # Start with a config file
  keygate run --config /etc/keygate/config.yaml

  # Override listen address
  keygate run --listen 0.0.0.0:8080

  # Validate config without starting server
  keygate run --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	snap, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := snap.Config

	// Flag overrides apply to the process, not to reloaded snapshots: the
	// listener and logger are built once.
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, out))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Fprintln(out, "✓ Configuration valid")
		return nil
	}

	store := config.NewStaticStore(snap, logger)

	printBanner(out, store)
	for _, w := range credentialWarnings(store) {
		logger.Warn(w)
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	store.SetObserver(collector)
	store.OnChange(collector.ObserveSnapshot)
	collector.ObserveSnapshot(store.Snapshot())

	if err := startReloaders(ctx, store, cfg.Reload, logger); err != nil {
		return cli.NewCommandError("run", err)
	}

	srv := server.NewServer(store, server.Options{
		Logger:  logger,
		Metrics: collector,
		Tracer:  tracer,
		Version: versionInfo(),
	})

	fmt.Fprintf(out, "✓ Listening on %s\n", cfg.Server.ListenAddress)
	for _, tier := range auth.Tiers() {
		fmt.Fprintf(out, "  %s%s (%s)\n", server.AuthPathPrefix, tier, auth.StateOf(store, tier))
	}

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}

// startReloaders wires the file watcher, the cron scheduler and SIGHUP to
// store reloads. All of them stop when ctx is done.
func startReloaders(ctx context.Context, store *config.Store, cfg config.ReloadConfig, logger *slog.Logger) error {
	if cfg.Watch && store.Path() != "" {
		watcher, err := config.NewWatcher(store, cfg.Debounce, logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("config watcher exited", "error", err)
			}
		}()
		context.AfterFunc(ctx, func() { _ = watcher.Stop() })
	}

	if cfg.Schedule != "" {
		scheduler := config.NewReloadScheduler(store, cfg.Schedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reload scheduler: %w", err)
		}
		if next := scheduler.NextRun(); next != nil {
			logger.Debug("reload scheduler started", "next_reload", next)
		}
	}

	cli.NotifyReload(ctx, func() {
		logger.Info("received SIGHUP, reloading configuration")
		_ = store.Reload(config.TriggerSignal)
	})

	return nil
}

func printBanner(w io.Writer, store *config.Store) {
	fmt.Fprintf(w, "Keygate v%s\n", Version)
	path := store.Path()
	if path == "" {
		path = "defaults and environment"
	}
	fmt.Fprintf(w, "Loading configuration from: %s\n", path)
	fmt.Fprintln(w, "✓ Configuration loaded")
	if cfg := store.Config(); cfg.Security.TLS.Enabled {
		fmt.Fprintf(w, "✓ TLS enabled (%s)\n", cfg.Security.TLS.CertFile)
	}
	slog.Debug("configuration keys", "keys", strings.Join(store.Snapshot().Keys(), ","))
}
