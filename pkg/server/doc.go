// Package server provides keygate's forward-auth HTTP service.
//
// # Routes
//
//	/auth/admin   admin tier (app.api_key, or app.public_key)
//	/auth/login   login tier (app.app_key)
//	/auth/public  public tier (app.public_key, app.public_enabled)
//
// A reverse proxy points its auth-request hook at one of these routes and
// forwards the client's Authorization header. A passing request gets 200
// with a JSON decision and the X-Keygate-Tier, X-Keygate-Authenticated, and
// X-Keygate-Match headers; a failing one gets 401, a {"detail": ...} body,
// and WWW-Authenticate: Bearer. Any method is accepted.
//
// Health endpoints (/health, /ready, /version by default) and the metrics
// path are served alongside. Readiness covers the configuration snapshot,
// its freshness when a reload schedule is set, and the TLS certificate when
// TLS is enabled.
//
// # Middleware
//
// Every request passes through panic recovery, request id assignment, and
// structured logging. Each route is additionally wrapped with a server span
// and Prometheus instrumentation labelled with the route.
//
// # Usage
//
//	store, err := config.NewStore(path, logger)
//	if err != nil {
//	    return err
//	}
//	srv := server.NewServer(store, server.Options{Logger: logger, Metrics: collector})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled and then shuts down gracefully within
// server.shutdown_timeout. The listener only accepts TLS 1.3 when
// security.tls is enabled.
package server
