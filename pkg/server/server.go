package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"grok2api/keygate/pkg/config"
	"grok2api/keygate/pkg/security/auth"
	keytls "grok2api/keygate/pkg/security/tls"
	"grok2api/keygate/pkg/server/middleware"
	"grok2api/keygate/pkg/telemetry/health"
	"grok2api/keygate/pkg/telemetry/logging"
	"grok2api/keygate/pkg/telemetry/metrics"
	"grok2api/keygate/pkg/telemetry/tracing"

	"github.com/robfig/cron/v3"
)

const (
	// AuthPathPrefix is prepended to a tier name to form its route.
	AuthPathPrefix = "/auth/"

	// Response headers set on a successful decision, for proxies that copy
	// auth-response headers upstream.
	HeaderTier          = "X-Keygate-Tier"
	HeaderAuthenticated = "X-Keygate-Authenticated"
	HeaderMatch         = "X-Keygate-Match"
)

// ErrServerStarted is returned by Start and Serve on a server that has
// already been started. A Server serves at most once.
var ErrServerStarted = errors.New("server has already been started")

// Options carries the optional collaborators of a Server.
type Options struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics instruments every route and serves the metrics path. Nil
	// disables both.
	Metrics *metrics.Collector

	// Tracer starts a span per request. Nil means a no-op tracer.
	Tracer *tracing.Tracer

	// Version is reported on the version endpoint.
	Version health.VersionInfo
}

// Server answers forward-auth requests for each tier against the
// credentials in a configuration store.
type Server struct {
	config   *config.Config
	store    *config.Store
	verifier *auth.Verifier
	auth     *auth.Middleware
	logger   *slog.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	checker  *health.Checker
	certs    *keytls.CertificateReloader
	version  health.VersionInfo

	httpServer   *http.Server
	listener     net.Listener
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server. Listener settings are taken from the store's
// configuration at construction; credentials are re-read from the store on
// every request, so hot reloads apply without a restart.
func NewServer(store *config.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}

	cfg := store.Config()
	verifier := auth.NewSnapshotVerifier(func() auth.Source { return store.Snapshot() })

	var recorder auth.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}

	s := &Server{
		config:   cfg,
		store:    store,
		verifier: verifier,
		auth:     auth.NewMiddleware(verifier, logger, recorder),
		logger:   logger.With("component", "server"),
		metrics:  opts.Metrics,
		tracer:   tracer,
		checker:  health.New(cfg.Telemetry.Health.CheckTimeout),
		version:  opts.Version,
	}

	s.checker.RegisterCheck("config", health.ConfigCheck(store))
	if maxAge, ok := freshnessWindow(cfg.Reload.Schedule); ok {
		s.checker.RegisterCheck("config_freshness", health.ConfigFreshnessCheck(store, maxAge))
	}

	if cfg.Security.TLS.Enabled {
		s.certs = keytls.NewCertificateReloader(
			cfg.Security.TLS.CertFile,
			cfg.Security.TLS.KeyFile,
			cfg.Security.TLS.ReloadInterval,
			logger,
		)
		s.checker.RegisterCheck("tls", s.certs.Check)
	}

	return s
}

// freshnessWindow returns three reload periods of a cron schedule: a
// snapshot older than that means scheduled reloads keep failing.
func freshnessWindow(schedule string) (time.Duration, bool) {
	if schedule == "" {
		return 0, false
	}
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return 0, false
	}
	next := sched.Next(time.Now())
	period := sched.Next(next).Sub(next)
	if period <= 0 {
		return 0, false
	}
	return 3 * period, true
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done or Shutdown is called, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerStarted
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.config.Server.ReadTimeout,
		ReadHeaderTimeout: s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
		IdleTimeout:       s.config.Server.IdleTimeout,
		MaxHeaderBytes:    s.config.Server.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	tlsEnabled := s.certs != nil
	if tlsEnabled {
		if err := s.certs.Start(ctx); err != nil {
			s.mu.Unlock()
			_ = ln.Close()
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = keytls.ServerConfig(s.certs)
	}

	s.listener = ln
	s.isRunning = true
	httpServer := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting keygate server",
			"address", ln.Addr().String(),
			"tls_enabled", tlsEnabled,
		)

		var err error
		if tlsEnabled {
			err = httpServer.ServeTLS(ln, "", "")
		} else {
			err = httpServer.Serve(ln)
		}
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return fmt.Errorf("server error: %w", err)
	}
}

// Shutdown gracefully shuts down the server. Calls after the first are
// no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.mu.RLock()
	running := s.isRunning
	httpServer := s.httpServer
	s.mu.RUnlock()
	if !running {
		return nil
	}

	s.shutdownOnce.Do(func() {
		s.logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("keygate server stopped")
	})

	return shutdownErr
}

// Handler returns the complete HTTP handler: routes plus the middleware
// chain. It does not need the server to be running.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Addr returns the listening address, or nil when not serving.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning || s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Checker returns the readiness checker so callers can register more checks.
func (s *Server) Checker() *health.Checker {
	return s.checker
}

// Verifier returns the verifier backing the auth routes.
func (s *Server) Verifier() *auth.Verifier {
	return s.verifier
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	for _, tier := range auth.Tiers() {
		route := AuthPathPrefix + string(tier)
		h := s.auth.Require(tier)(http.HandlerFunc(s.handleDecision))
		mux.Handle(route, s.instrument(route, h))
	}

	health.Register(mux, s.config.Telemetry.Health, s.checker, s.version, s.instrument)

	if s.metrics != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.metrics.Handler())
	}

	mux.Handle("/", s.instrument("unmatched", http.HandlerFunc(notFound)))

	// Recovery is outermost so it also covers the other middleware.
	return middleware.Chain(mux,
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logging(s.logger),
	)
}

// instrument adds tracing and metrics to a route handler.
func (s *Server) instrument(route string, h http.Handler) http.Handler {
	inner := h
	h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracing.SetRequestAttributes(tracing.SpanFromContext(r.Context()), logging.GetRequestID(r.Context()))
		inner.ServeHTTP(w, r)
	})
	h = s.tracer.Middleware(route)(h)
	if s.metrics != nil {
		h = s.metrics.InstrumentHandler(route, h)
	}
	return h
}

// DecisionResponse is the body of a successful forward-auth response.
type DecisionResponse struct {
	Tier          string `json:"tier"`
	Authenticated bool   `json:"authenticated"`
	Match         string `json:"match"`
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	decision, ok := auth.DecisionFromContext(r.Context())
	if !ok {
		auth.WriteError(w, errors.New("missing auth decision"))
		return
	}

	w.Header().Set(HeaderTier, string(decision.Tier))
	w.Header().Set(HeaderAuthenticated, strconv.FormatBool(decision.Authenticated))
	w.Header().Set(HeaderMatch, decision.Match.String())
	w.Header().Set("Cache-Control", "no-store")

	writeJSON(w, http.StatusOK, DecisionResponse{
		Tier:          string(decision.Tier),
		Authenticated: decision.Authenticated,
		Match:         decision.Match.String(),
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
