/*
Package security holds the credential and transport security packages.

# Credential Verification

Package auth decides whether a bearer token is acceptable for the admin,
login or public tier:

	verifier := auth.NewVerifier(store)
	decision, err := verifier.VerifyPublic(auth.Bearer(token))

# Secret References

Package secrets resolves ${secret:name} references in the app keys from
the environment or a mounted secrets directory:

	manager := secrets.NewManager(logger,
		secrets.NewEnvProvider(secrets.DefaultEnvPrefix),
		fileProvider,
	)
	value, err := manager.ResolveReferences(ctx, "${secret:admin-key}")

# TLS

Package tls serves a certificate that is reloaded when its files change:

	reloader := tls.NewCertificateReloader(certFile, keyFile, time.Minute, logger)
	server.TLSConfig = tls.ServerConfig(reloader)
*/
package security
