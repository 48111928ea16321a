package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := executeCommand(t, nil, "", "validate", "--config", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	for _, want := range []string{"Configuration valid: " + path, "admin   protected", "public  protected"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warning:") {
		t.Errorf("unexpected warnings:\n%s", out)
	}
	if strings.Contains(out, "admin-secret") {
		t.Errorf("output leaks a credential:\n%s", out)
	}
}

func TestValidateCommand_Warnings(t *testing.T) {
	path := writeConfig(t, `
app:
  public_enabled: true
`)

	out, err := executeCommand(t, nil, "", "validate", "--config", path, "--output", "json")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	var result ValidateResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	wantTiers := map[string]string{"admin": "open", "login": "protected", "public": "open"}
	for tier, state := range wantTiers {
		if result.Tiers[tier] != state {
			t.Errorf("tier %s = %q, want %q", tier, result.Tiers[tier], state)
		}
	}
	if len(result.Warnings) != 3 {
		t.Errorf("warnings = %v, want 3", result.Warnings)
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "no-port"
`)

	_, err := executeCommand(t, nil, "", "validate", "--config", path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "server.listen_address") {
		t.Errorf("error = %v", err)
	}
}
