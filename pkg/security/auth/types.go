package auth

import "fmt"

// Tier identifies a protection level a request is checked against.
type Tier string

const (
	// TierAdmin protects administrative API operations.
	TierAdmin Tier = "admin"

	// TierLogin protects the console login action.
	TierLogin Tier = "login"

	// TierPublic protects the public tier.
	TierPublic Tier = "public"
)

// Tiers returns all tiers in a stable order.
func Tiers() []Tier {
	return []Tier{TierAdmin, TierLogin, TierPublic}
}

// ParseTier converts a tier name into a Tier.
func ParseTier(name string) (Tier, error) {
	switch Tier(name) {
	case TierAdmin, TierLogin, TierPublic:
		return Tier(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
}

// Credential is the token presented with a request, if any.
// The zero value means no credential was presented.
type Credential struct {
	Token   string
	Present bool
}

// NoCredential represents a request without a bearer token.
var NoCredential = Credential{}

// Bearer returns a Credential for a presented token.
func Bearer(token string) Credential {
	return Credential{Token: token, Present: true}
}

// Decision describes a successful verification.
type Decision struct {
	// Tier is the tier that was checked.
	Tier Tier

	// Authenticated is false when the tier is open and the request
	// was let through without identity.
	Authenticated bool

	// Identity is the accepted token. Empty when not authenticated.
	Identity string

	// Match records which form of the token was accepted.
	Match MatchResult
}

// Settings holds the four values the verifiers read.
type Settings struct {
	AdminKey      string
	LoginKey      string
	PublicKey     string
	PublicEnabled bool
}

// Setting names looked up in a Source.
const (
	SettingAdminKey      = "app.api_key"
	SettingLoginKey      = "app.app_key"
	SettingPublicKey     = "app.public_key"
	SettingPublicEnabled = "app.public_enabled"
)

// DefaultSettings returns the values used when a setting is absent from
// the configuration.
func DefaultSettings() Settings {
	return Settings{
		AdminKey:      "",
		LoginKey:      "grok2api",
		PublicKey:     "",
		PublicEnabled: false,
	}
}

// Source supplies current configuration values. Implementations must be safe
// for concurrent use.
type Source interface {
	GetString(key, def string) string
	GetBool(key string, def bool) bool
}
