// Package tls serves keygate's HTTPS listener certificate.
//
// The listener only accepts TLS 1.3. A CertificateReloader polls the
// configured key pair and swaps in renewed certificates without a restart,
// keeping the previous pair when a reload fails. Its Check method is
// registered as a readiness check so an expired certificate marks the
// process unready.
package tls
