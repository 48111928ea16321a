/*
Package auth decides whether a bearer token grants access to one of keygate's
three protection tiers.

# Tiers

  - admin: administrative API operations, guarded by app.api_key. When the key is
    unset the tier is open. A token accepted by the public tier is also accepted here.
  - login: the console login action, guarded by app.app_key. An unset key is a hard
    failure, never an open gate. Only the raw key is accepted.
  - public: the public tier, guarded by app.public_key. When the key is unset the tier
    is open if app.public_enabled is true and disabled otherwise.

# Public tokens

A public key may be presented either as-is or in its derived form

	public-<hex(sha256("grok2api-public:" + key))>

which lets browser clients authenticate without holding the raw key. Use
PublicToken to compute the derived form.

# Basic Usage

	verifier := auth.NewVerifier(source)

	decision, err := verifier.VerifyPublic(auth.Bearer(token))
	if err != nil {
		// err is one of ErrMissingCredential, ErrInvalidCredential,
		// ErrNotConfigured or ErrAccessDisabled
	}

Each verification reads the current settings from the Source, so configuration
reloads are visible on the very next call.

# HTTP

Middleware adapts a Verifier to net/http:

	mw := auth.NewMiddleware(verifier, logger, collector)
	mux.Handle("/admin/", mw.Require(auth.TierAdmin)(adminHandler))

Failures are rendered as 401 with a JSON body {"detail": "..."} and a
"WWW-Authenticate: Bearer" header. Credentials are never logged.
*/
package auth
