// Package logging configures the structured logger used across keygate.
//
// Loggers are plain *slog.Logger values. New selects a JSON or text
// handler, adds request and trace identifiers from the record's context,
// and optionally redacts credentials:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Redact: true})
//	logger.InfoContext(ctx, "request handled", "status", 200)
//
// Redaction replaces any attribute whose key names a secret (api_key,
// token, authorization, ...) with "***", and masks bearer headers and
// derived public tokens appearing inside other string values.
package logging
