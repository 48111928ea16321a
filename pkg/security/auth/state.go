package auth

import "strings"

// TierState summarizes how a tier treats requests under a configuration.
type TierState string

const (
	// StateProtected requires a valid credential.
	StateProtected TierState = "protected"
	// StateOpen lets every request through without identity.
	StateOpen TierState = "open"
	// StateDisabled rejects every request.
	StateDisabled TierState = "disabled"
)

// TierStates returns the states a tier can be in.
func TierStates() []TierState {
	return []TierState{StateProtected, StateOpen, StateDisabled}
}

// StateOf derives the state of tier from src with the same settings and
// defaults the verifiers read. Unknown tiers report StateDisabled.
func StateOf(src Source, tier Tier) TierState {
	defaults := DefaultSettings()
	set := func(key, def string) bool {
		return strings.TrimSpace(src.GetString(key, def)) != ""
	}

	switch tier {
	case TierAdmin:
		if set(SettingAdminKey, defaults.AdminKey) {
			return StateProtected
		}
		return StateOpen
	case TierLogin:
		if set(SettingLoginKey, defaults.LoginKey) {
			return StateProtected
		}
		return StateDisabled
	case TierPublic:
		if set(SettingPublicKey, defaults.PublicKey) {
			return StateProtected
		}
		if src.GetBool(SettingPublicEnabled, defaults.PublicEnabled) {
			return StateOpen
		}
		return StateDisabled
	default:
		return StateDisabled
	}
}
