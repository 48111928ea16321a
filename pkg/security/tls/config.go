package tls

import (
	"crypto/tls"
)

// ServerConfig returns the listener TLS configuration: TLS 1.3 only, with
// certificates served by the reloader.
func ServerConfig(reloader *CertificateReloader) *tls.Config {
	return &tls.Config{
		MinVersion:     tls.VersionTLS13,
		GetCertificate: reloader.GetCertificate,
		NextProtos:     []string{"h2", "http/1.1"},
	}
}
