// Package health provides liveness, readiness, and version endpoints for
// keygate.
//
// Liveness only says the process is up. Readiness runs every registered
// check concurrently, each bounded by the configured timeout, and answers
// 503 while any of them fails. The server registers ConfigCheck so a
// process without a loaded configuration snapshot is never marked ready.
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("config", health.ConfigCheck(store))
//	health.Register(mux, cfg.Telemetry.Health, checker, health.NewVersionInfo(version, commit, date), nil)
//
// The endpoints are unauthenticated and never include configuration values.
package health
