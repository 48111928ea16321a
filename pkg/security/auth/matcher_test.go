package auth

import (
	"strings"
	"testing"
)

const secret1Token = "public-7bb843bb6fccfc307833389723976cef348dea458b53533265486cc6bc77260d"

func TestHashPublicKey(t *testing.T) {
	got := HashPublicKey("secret1")
	want := "7bb843bb6fccfc307833389723976cef348dea458b53533265486cc6bc77260d"
	if got != want {
		t.Errorf("HashPublicKey(secret1) = %q, want %q", got, want)
	}

	// Surrounding whitespace is not part of the secret
	if trimmed := HashPublicKey("  secret1\n"); trimmed != want {
		t.Errorf("HashPublicKey with whitespace = %q, want %q", trimmed, want)
	}

	if len(got) != 64 || strings.ToLower(got) != got {
		t.Errorf("hash should be 64 lowercase hex chars, got %q", got)
	}
}

func TestPublicToken(t *testing.T) {
	if got := PublicToken("secret1"); got != secret1Token {
		t.Errorf("PublicToken(secret1) = %q, want %q", got, secret1Token)
	}
	if PublicToken("a") == PublicToken("b") {
		t.Error("different secrets produced the same token")
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		secret    string
		want      MatchResult
	}{
		{name: "exact", presented: "secret1", secret: "secret1", want: ExactMatch},
		{name: "exact against padded secret", presented: "secret1", secret: "  secret1  ", want: ExactMatch},
		{name: "hashed", presented: secret1Token, secret: "secret1", want: HashedMatch},
		{name: "hashed against padded secret", presented: secret1Token, secret: "\tsecret1\n", want: HashedMatch},
		{name: "wrong token", presented: "secret2", secret: "secret1", want: NoMatch},
		{name: "padded presented", presented: " secret1", secret: "secret1", want: NoMatch},
		{name: "prefix only", presented: "public-", secret: "secret1", want: NoMatch},
		{name: "hash of other secret", presented: PublicToken("other"), secret: "secret1", want: NoMatch},
		{name: "uppercase hash", presented: "public-" + strings.ToUpper(HashPublicKey("secret1")), secret: "secret1", want: NoMatch},
		{name: "bare hash without prefix", presented: HashPublicKey("secret1"), secret: "secret1", want: NoMatch},
		{name: "empty presented", presented: "", secret: "secret1", want: NoMatch},
		{name: "empty secret", presented: "", secret: "", want: NoMatch},
		{name: "whitespace secret equal to presented", presented: "   ", secret: "   ", want: NoMatch},
		{name: "token of empty secret", presented: PublicToken(""), secret: "", want: NoMatch},
		{name: "token of whitespace secret", presented: PublicToken(" "), secret: " ", want: NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.presented, tt.secret); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.presented, tt.secret, got, tt.want)
			}
			if got := Matches(tt.presented, tt.secret); got != (tt.want != NoMatch) {
				t.Errorf("Matches(%q, %q) = %v", tt.presented, tt.secret, got)
			}
		})
	}
}

func TestMatch_UnsetSecretNeverMatches(t *testing.T) {
	unset := []string{"", " ", "\t", "\n  \r"}
	candidates := []string{"", " ", "\t", "public-", PublicToken(""), "anything"}

	for _, secret := range unset {
		for _, presented := range append(candidates, secret) {
			if Matches(presented, secret) {
				t.Errorf("Matches(%q, %q) = true, want false", presented, secret)
			}
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	for _, secret := range []string{"a", "secret1", "with space", "ünïcödé"} {
		first := PublicToken(secret)
		for i := 0; i < 5; i++ {
			if got := PublicToken(secret); got != first {
				t.Fatalf("PublicToken(%q) not deterministic: %q vs %q", secret, got, first)
			}
		}
		if Match(first, secret) != HashedMatch {
			t.Errorf("derived token for %q not accepted", secret)
		}
		if Match(strings.TrimSpace(secret), secret) != ExactMatch {
			t.Errorf("trimmed secret %q not accepted", secret)
		}
	}
}

func TestMatchResult_String(t *testing.T) {
	tests := map[MatchResult]string{
		NoMatch:        "none",
		ExactMatch:     "exact",
		HashedMatch:    "hashed",
		MatchResult(9): "none",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("MatchResult(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}
