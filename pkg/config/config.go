package config

import "time"

// Config is the root configuration structure for keygate.
type Config struct {
	// App contains the credentials guarding each protection tier. It is
	// filled from the raw document rather than decoded, so loosely typed
	// values such as `public_enabled: 1` do not fail the load.
	App AppConfig `yaml:"-"`

	// Server contains HTTP listener configuration.
	Server ServerConfig `yaml:"server"`

	// Reload controls how configuration changes are picked up at runtime.
	Reload ReloadConfig `yaml:"reload"`

	// Telemetry contains logging, metrics, and health check configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Security contains transport security configuration.
	Security SecurityConfig `yaml:"security"`
}

// AppConfig holds the tier credentials. The verifiers do not read these
// fields; they look the values up by key through Snapshot.GetString and
// Snapshot.GetBool so that an absent key falls back to the verifier's
// default while an explicitly empty key stays empty.
type AppConfig struct {
	// APIKey guards the admin tier. Empty disables admin authentication.
	APIKey string `yaml:"api_key"`

	// AppKey is the console login password. Empty makes login impossible.
	AppKey string `yaml:"app_key"`

	// PublicKey guards the public tier.
	PublicKey string `yaml:"public_key"`

	// PublicEnabled opens the public tier when PublicKey is empty.
	PublicEnabled bool `yaml:"public_enabled"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	// Default: 65536
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// ReloadConfig controls runtime configuration reloads.
type ReloadConfig struct {
	// Watch enables reloading when the configuration file changes on disk.
	// Default: true
	Watch bool `yaml:"watch"`

	// Debounce is the quiet period after a file event before reloading.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic reloads, for
	// filesystems where change notifications are unreliable.
	// Example: "@every 30s", "*/5 * * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Health  HealthConfig  `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// Redact scrubs tokens and secrets from log output.
	// Default: true
	Redact bool `yaml:"redact"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "keygate"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets defines histogram buckets for request duration (seconds).
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are recorded and exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the trace exporter to use.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "keygate"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS to the collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// VersionPath default: "/version"
	VersionPath string `yaml:"version_path"`

	// CheckTimeout is the timeout for individual health checks.
	// Default: 2s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// SecurityConfig contains transport security and secret sourcing configuration.
type SecurityConfig struct {
	TLS     TLSConfig     `yaml:"tls"`
	Secrets SecretsConfig `yaml:"secrets"`
}

// TLSConfig contains TLS listener configuration.
type TLSConfig struct {
	// Enabled serves HTTPS instead of HTTP.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM-encoded certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded private key.
	KeyFile string `yaml:"key_file"`

	// ReloadInterval is how often the key pair is checked for changes.
	// Default: 1m
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// SecretsConfig controls how ${secret:name} references in the app keys are
// resolved.
type SecretsConfig struct {
	// EnvPrefix is prepended to a secret name to form the environment
	// variable consulted first.
	// Default: KEYGATE_SECRET_
	EnvPrefix string `yaml:"env_prefix"`

	// Dir holds one file per secret, as mounted by Docker or Kubernetes.
	// Empty disables file lookups.
	Dir string `yaml:"dir"`
}
