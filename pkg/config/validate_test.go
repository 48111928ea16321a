package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(cfg *Config)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name: "credentials are never validated",
			modify: func(cfg *Config) {
				cfg.App = AppConfig{APIKey: " ", AppKey: "", PublicKey: "", PublicEnabled: true}
			},
		},
		{
			name:       "missing listen address",
			modify:     func(cfg *Config) { cfg.Server.ListenAddress = "" },
			wantFields: []string{"server.listen_address"},
		},
		{
			name:       "listen address without port",
			modify:     func(cfg *Config) { cfg.Server.ListenAddress = "localhost" },
			wantFields: []string{"server.listen_address"},
		},
		{
			name: "negative timeouts",
			modify: func(cfg *Config) {
				cfg.Server.ReadTimeout = -time.Second
				cfg.Server.ShutdownTimeout = -time.Second
			},
			wantFields: []string{"server.read_timeout", "server.shutdown_timeout"},
		},
		{
			name:       "negative max header bytes",
			modify:     func(cfg *Config) { cfg.Server.MaxHeaderBytes = -1 },
			wantFields: []string{"server.max_header_bytes"},
		},
		{
			name:       "negative debounce",
			modify:     func(cfg *Config) { cfg.Reload.Debounce = -time.Millisecond },
			wantFields: []string{"reload.debounce"},
		},
		{
			name:   "valid cron schedule",
			modify: func(cfg *Config) { cfg.Reload.Schedule = "*/5 * * * *" },
		},
		{
			name:   "valid descriptor schedule",
			modify: func(cfg *Config) { cfg.Reload.Schedule = "@every 30s" },
		},
		{
			name:       "invalid schedule",
			modify:     func(cfg *Config) { cfg.Reload.Schedule = "every now and then" },
			wantFields: []string{"reload.schedule"},
		},
		{
			name: "invalid logging",
			modify: func(cfg *Config) {
				cfg.Telemetry.Logging.Level = "trace"
				cfg.Telemetry.Logging.Format = "xml"
			},
			wantFields: []string{"telemetry.logging.level", "telemetry.logging.format"},
		},
		{
			name:       "metrics path without slash",
			modify:     func(cfg *Config) { cfg.Telemetry.Metrics.Path = "metrics" },
			wantFields: []string{"telemetry.metrics.path"},
		},
		{
			name: "metrics path ignored when disabled",
			modify: func(cfg *Config) {
				cfg.Telemetry.Metrics.Enabled = false
				cfg.Telemetry.Metrics.Path = ""
			},
		},
		{
			name:       "unsorted buckets",
			modify:     func(cfg *Config) { cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{0.1, 0.01} },
			wantFields: []string{"telemetry.metrics.request_duration_buckets"},
		},
		{
			name: "tracing with bad sampler and exporter",
			modify: func(cfg *Config) {
				cfg.Telemetry.Tracing.Enabled = true
				cfg.Telemetry.Tracing.Sampler = "sometimes"
				cfg.Telemetry.Tracing.Exporter = "zipkin"
			},
			wantFields: []string{"telemetry.tracing.sampler", "telemetry.tracing.exporter"},
		},
		{
			name:       "sample ratio out of range",
			modify:     func(cfg *Config) { cfg.Telemetry.Tracing.SampleRatio = 1.5 },
			wantFields: []string{"telemetry.tracing.sample_ratio"},
		},
		{
			name: "bad health paths",
			modify: func(cfg *Config) {
				cfg.Telemetry.Health.LivenessPath = "health"
				cfg.Telemetry.Health.VersionPath = ""
			},
			wantFields: []string{"telemetry.health.liveness_path", "telemetry.health.version_path"},
		},
		{
			name:       "health timeout too large",
			modify:     func(cfg *Config) { cfg.Telemetry.Health.CheckTimeout = 2 * time.Minute },
			wantFields: []string{"telemetry.health.check_timeout"},
		},
		{
			name:       "tls without files",
			modify:     func(cfg *Config) { cfg.Security.TLS.Enabled = true },
			wantFields: []string{"security.tls.cert_file", "security.tls.key_file"},
		},
		{
			name:       "negative tls reload interval",
			modify:     func(cfg *Config) { cfg.Security.TLS.ReloadInterval = -time.Second },
			wantFields: []string{"security.tls.reload_interval"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Validate(cfg)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			got := make(map[string]bool)
			for _, fe := range verr.Errors {
				got[fe.Field] = true
			}
			for _, f := range tt.wantFields {
				if !got[f] {
					t.Errorf("expected error for field %q, got %+v", f, verr.Errors)
				}
			}
			if len(verr.Errors) != len(tt.wantFields) {
				t.Errorf("expected %d errors, got %d: %+v", len(tt.wantFields), len(verr.Errors), verr.Errors)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("empty error = %q", got)
	}

	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("single error = %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := multi.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("multi error = %q", got)
	}
}
