package config

import (
	"reflect"
	"testing"
)

func TestSnapshot_GetString(t *testing.T) {
	snap := NewSnapshot(map[string]any{
		"s":     "value",
		"empty": "",
		"null":  nil,
		"int":   42,
		"float": 1.5,
		"bool":  true,
	})

	tests := []struct {
		key  string
		def  string
		want string
	}{
		{"s", "d", "value"},
		{"empty", "d", ""},
		{"null", "d", ""},
		{"int", "d", "42"},
		{"float", "d", "1.5"},
		{"bool", "d", "true"},
		{"absent", "d", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := snap.GetString(tt.key, tt.def); got != tt.want {
				t.Errorf("GetString(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSnapshot_GetBool(t *testing.T) {
	snap := NewSnapshot(map[string]any{
		"true":      true,
		"false":     false,
		"str-true":  "true",
		"str-one":   "1",
		"str-false": "false",
		"str-junk":  "maybe",
		"int-zero":  0,
		"int-one":   1,
		"float":     0.5,
		"null":      nil,
		"list":      []any{1},
	})

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"str-true", false, true},
		{"str-one", false, true},
		{"str-false", true, false},
		{"str-junk", true, true},
		{"str-junk", false, false},
		{"int-zero", true, false},
		{"int-one", false, true},
		{"float", false, true},
		{"null", true, false},
		{"list", true, true},
		{"absent", true, true},
		{"absent", false, false},
	}

	for _, tt := range tests {
		if got := snap.GetBool(tt.key, tt.def); got != tt.want {
			t.Errorf("GetBool(%q, %v) = %v, want %v", tt.key, tt.def, got, tt.want)
		}
	}
}

func TestSnapshot_Nil(t *testing.T) {
	var snap *Snapshot
	if got := snap.GetString("k", "d"); got != "d" {
		t.Errorf("nil GetString = %q", got)
	}
	if !snap.GetBool("k", true) {
		t.Error("nil GetBool should return default")
	}
	if snap.Has("k") || snap.Keys() != nil {
		t.Error("nil snapshot should be empty")
	}
}

func TestSnapshot_KeysAndIsolation(t *testing.T) {
	values := map[string]any{"b": 1, "a": 2}
	snap := NewSnapshot(values)
	values["c"] = 3

	if got := snap.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
	if snap.Has("c") {
		t.Error("snapshot should not observe later changes to the input map")
	}
}
