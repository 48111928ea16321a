package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Snapshot is an immutable view of the configuration as of one load.
//
// Besides the typed Config it keeps every leaf value from the YAML document
// under its dotted key. Lookups through GetString and GetBool distinguish
// an absent key, which yields the caller's default, from a key that is
// present but empty.
type Snapshot struct {
	// Config is the typed configuration with defaults applied.
	Config *Config

	// Path is the file the snapshot was loaded from, empty for defaults.
	Path string

	// LoadedAt is when the snapshot was parsed.
	LoadedAt time.Time

	// Version increases by one on every successful store update.
	Version uint64

	values map[string]any
}

// NewSnapshot builds a snapshot from already flattened values. Intended for
// tests and embedding; Load is the normal entry point.
func NewSnapshot(values map[string]any) *Snapshot {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Snapshot{
		Config:   Default(),
		values:   copied,
		LoadedAt: time.Now(),
	}
}

// syncApp mirrors the credential values into the typed Config.
func (s *Snapshot) syncApp() {
	s.Config.App = AppConfig{
		APIKey:        s.GetString("app.api_key", ""),
		AppKey:        s.GetString("app.app_key", ""),
		PublicKey:     s.GetString("app.public_key", ""),
		PublicEnabled: s.GetBool("app.public_enabled", false),
	}
}

// GetString returns the value at key rendered as a string. Absent keys
// return def, a null value returns "", and non-string scalars use their
// default formatting.
func (s *Snapshot) GetString(key, def string) string {
	if s == nil {
		return def
	}
	v, ok := s.values[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// GetBool returns the value at key as a boolean. Strings are parsed with
// strconv.ParseBool and numbers are true when non-zero. Unparseable values
// and absent keys return def; a null value is false.
func (s *Snapshot) GetBool(key string, def bool) bool {
	if s == nil {
		return def
	}
	v, ok := s.values[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return def
		}
		return b
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	default:
		return def
	}
}

// Has reports whether key is present in the snapshot.
func (s *Snapshot) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[key]
	return ok
}

// Keys returns the sorted dotted keys present in the snapshot.
func (s *Snapshot) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
