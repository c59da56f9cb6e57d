package model

import (
	"strings"
	"testing"
)

func TestNormalizeHostname(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"Example.COM", "example.com"},
		{"  shop.example.com  ", "shop.example.com"},
		{"Example.COM/", "example.com"},
		{" EXAMPLE.com/ ", "example.com"},
	}
	for _, c := range cases {
		if got := NormalizeHostname(c.in); got != c.want {
			t.Errorf("NormalizeHostname(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewVerificationToken(t *testing.T) {
	tok, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("NewVerificationToken: %v", err)
	}
	if !strings.HasPrefix(tok, "domain-verify-") {
		t.Errorf("token %q missing stable prefix", tok)
	}
	// 16 random bytes hex-encoded after the prefix.
	if got := len(strings.TrimPrefix(tok, "domain-verify-")); got != 32 {
		t.Errorf("token hex length = %d, want 32", got)
	}

	other, err := NewVerificationToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok == other {
		t.Error("two generated tokens must not collide")
	}
}
