package auth

import "fmt"

// Verifier applies the tier policies to presented credentials. It holds no
// mutable state; every call reads the current settings from its source, so a
// Verifier is safe for concurrent use.
type Verifier struct {
	view     func() Source
	defaults Settings
}

// NewVerifier creates a Verifier that reads each setting directly from src.
// Settings read during one call may come from different configuration
// generations if src is reloaded concurrently.
func NewVerifier(src Source) *Verifier {
	return newVerifier(func() Source { return src })
}

// NewSnapshotVerifier creates a Verifier that calls snapshot once per
// verification and reads all settings from the returned view.
func NewSnapshotVerifier(snapshot func() Source) *Verifier {
	return newVerifier(snapshot)
}

func newVerifier(view func() Source) *Verifier {
	return &Verifier{
		view:     view,
		defaults: DefaultSettings(),
	}
}

// Verify dispatches to the verification procedure for tier.
func (v *Verifier) Verify(tier Tier, cred Credential) (Decision, error) {
	switch tier {
	case TierAdmin:
		return v.VerifyAdminKey(cred)
	case TierLogin:
		return v.VerifyLogin(cred)
	case TierPublic:
		return v.VerifyPublic(cred)
	default:
		return Decision{Tier: tier}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}

// VerifyAdminKey gates administrative operations. An unset admin key leaves
// the tier open. Tokens accepted by the public tier are accepted here too.
func (v *Verifier) VerifyAdminKey(cred Credential) (Decision, error) {
	src := v.view()

	adminKey, configured := normalizeSecret(src.GetString(SettingAdminKey, v.defaults.AdminKey))
	if !configured {
		return Decision{Tier: TierAdmin}, nil
	}

	if !cred.Present {
		return Decision{Tier: TierAdmin}, ErrMissingCredential
	}

	if tokensEqual(cred.Token, adminKey) {
		return accepted(TierAdmin, cred, ExactMatch), nil
	}

	publicKey := src.GetString(SettingPublicKey, v.defaults.PublicKey)
	if m := Match(cred.Token, publicKey); m != NoMatch {
		return accepted(TierAdmin, cred, m), nil
	}

	return Decision{Tier: TierAdmin}, ErrInvalidCredential
}

// VerifyLogin gates the login action. The login key must be configured and
// only its raw form is accepted.
func (v *Verifier) VerifyLogin(cred Credential) (Decision, error) {
	src := v.view()

	loginKey, configured := normalizeSecret(src.GetString(SettingLoginKey, v.defaults.LoginKey))
	if !configured {
		return Decision{Tier: TierLogin}, ErrNotConfigured
	}

	if !cred.Present {
		return Decision{Tier: TierLogin}, ErrMissingCredential
	}

	if !tokensEqual(cred.Token, loginKey) {
		return Decision{Tier: TierLogin}, ErrInvalidCredential
	}

	return accepted(TierLogin, cred, ExactMatch), nil
}

// VerifyPublic gates the public tier.
//
//	public key unset, public_enabled true   -> open
//	public key unset, public_enabled false  -> ErrAccessDisabled
//	public key set                          -> raw or derived token required
func (v *Verifier) VerifyPublic(cred Credential) (Decision, error) {
	src := v.view()

	publicKey, configured := normalizeSecret(src.GetString(SettingPublicKey, v.defaults.PublicKey))
	if !configured {
		if src.GetBool(SettingPublicEnabled, v.defaults.PublicEnabled) {
			return Decision{Tier: TierPublic}, nil
		}
		return Decision{Tier: TierPublic}, ErrAccessDisabled
	}

	if !cred.Present {
		return Decision{Tier: TierPublic}, ErrMissingCredential
	}

	if m := Match(cred.Token, publicKey); m != NoMatch {
		return accepted(TierPublic, cred, m), nil
	}

	return Decision{Tier: TierPublic}, ErrInvalidCredential
}

func accepted(tier Tier, cred Credential, m MatchResult) Decision {
	return Decision{
		Tier:          tier,
		Authenticated: true,
		Identity:      cred.Token,
		Match:         m,
	}
}
