// Package config provides configuration management for keygate.
//
// Configuration is read from a YAML file, overlaid with environment
// variables, validated, and published as an immutable Snapshot through a
// Store. Reloads swap the snapshot atomically, so a request that grabbed a
// snapshot sees one consistent set of credentials for its whole lifetime.
//
// # Configuration Loading
//
//	snap, err := config.Load("config.yaml")
//	fmt.Println(snap.GetString("app.app_key", "grok2api"))
//
// Snapshot.GetString and Snapshot.GetBool look values up by dotted key.
// An absent key returns the supplied default while a key that is present
// with an empty value returns the empty value, which the credential tiers
// rely on: a missing app_key falls back to the built-in default, but
// `app_key: ""` disables login.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention KEYGATE_SECTION_FIELD:
//
//   - KEYGATE_APP_API_KEY overrides app.api_key
//   - KEYGATE_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - KEYGATE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Credential variables take effect even when set to the empty string.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Reloading
//
// A Store can be reloaded explicitly, by a Watcher on file changes, or by
// a ReloadScheduler on a cron schedule. A failed reload keeps the previous
// snapshot in effect.
//
//	store, err := config.NewStore("config.yaml", logger)
//	w, err := config.NewWatcher(store, 100*time.Millisecond, logger)
//	go w.Watch(ctx)
//
// # Secret References
//
// The app keys may be written as ${secret:name}. Each reference is looked
// up in KEYGATE_SECRET_<NAME> and then in security.secrets.dir/<name> on
// every load. An unresolvable reference fails the load.
//
// # Example Configuration
//
//	app:
//	  api_key: "admin-secret"
//	  app_key: "console-password"
//	  public_key: "shared-secret"
//	  public_enabled: false
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//
//	reload:
//	  watch: true
//	  schedule: "@every 1m"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
//	security:
//	  secrets:
//	    dir: "/run/secrets"
package config
