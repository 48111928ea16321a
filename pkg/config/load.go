package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "KEYGATE_"

// Load reads the YAML file at path and returns a validated Snapshot.
// Defaults are applied first, then file values, then environment variable
// overrides. An empty path loads defaults and environment overrides only.
func Load(path string) (*Snapshot, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}

	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	applyEnvOverrides(snap.Config, snap.values)

	if err := resolveSecrets(snap); err != nil {
		return nil, err
	}

	if err := Validate(snap.Config); err != nil {
		return nil, err
	}

	snap.Path = path
	return snap, nil
}

// Parse decodes YAML into a Snapshot without consulting the environment or
// validating. Empty input yields the defaults.
func Parse(data []byte) (*Snapshot, error) {
	cfg := Default()
	raw := map[string]any{}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	ApplyDefaults(cfg)

	values := make(map[string]any)
	flatten("", raw, values)

	snap := &Snapshot{
		Config:   cfg,
		values:   values,
		LoadedAt: time.Now(),
	}
	snap.syncApp()
	return snap, nil
}

// flatten walks nested YAML mappings and records each leaf under its dotted
// path, so {app: {api_key: x}} becomes "app.api_key" -> x.
func flatten(prefix string, node map[string]any, out map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]any:
			flatten(key, child, out)
		case map[any]any:
			converted := make(map[string]any, len(child))
			for ck, cv := range child {
				converted[fmt.Sprint(ck)] = cv
			}
			flatten(key, converted, out)
		default:
			out[key] = v
		}
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format KEYGATE_SECTION_FIELD.
//
// Credential variables are honoured even when set to the empty string, which
// lets an operator explicitly clear a key (for example to disable login).
func applyEnvOverrides(cfg *Config, values map[string]any) {
	// App overrides
	if val, ok := os.LookupEnv("KEYGATE_APP_API_KEY"); ok {
		cfg.App.APIKey = val
		values["app.api_key"] = val
	}
	if val, ok := os.LookupEnv("KEYGATE_APP_APP_KEY"); ok {
		cfg.App.AppKey = val
		values["app.app_key"] = val
	}
	if val, ok := os.LookupEnv("KEYGATE_APP_PUBLIC_KEY"); ok {
		cfg.App.PublicKey = val
		values["app.public_key"] = val
	}
	if val := os.Getenv("KEYGATE_APP_PUBLIC_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.App.PublicEnabled = b
			values["app.public_enabled"] = b
		}
	}

	// Server overrides
	if val := os.Getenv("KEYGATE_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
		values["server.listen_address"] = val
	}
	if val := os.Getenv("KEYGATE_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("KEYGATE_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("KEYGATE_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("KEYGATE_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("KEYGATE_SERVER_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.MaxHeaderBytes = i
		}
	}

	// Reload overrides
	if val := os.Getenv("KEYGATE_RELOAD_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Reload.Watch = b
		}
	}
	if val := os.Getenv("KEYGATE_RELOAD_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Reload.Debounce = d
		}
	}
	if val := os.Getenv("KEYGATE_RELOAD_SCHEDULE"); val != "" {
		cfg.Reload.Schedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("KEYGATE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("KEYGATE_TELEMETRY_HEALTH_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Health.Enabled = b
		}
	}

	// Security overrides
	if val := os.Getenv("KEYGATE_SECURITY_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Security.TLS.Enabled = b
		}
	}
	if val := os.Getenv("KEYGATE_SECURITY_TLS_CERT_FILE"); val != "" {
		cfg.Security.TLS.CertFile = val
	}
	if val := os.Getenv("KEYGATE_SECURITY_TLS_KEY_FILE"); val != "" {
		cfg.Security.TLS.KeyFile = val
	}
	if val := os.Getenv("KEYGATE_SECURITY_SECRETS_DIR"); val != "" {
		cfg.Security.Secrets.Dir = val
	}
	if val := os.Getenv("KEYGATE_SECURITY_TLS_RELOAD_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Security.TLS.ReloadInterval = d
		}
	}
}
