package dnslookup

import "testing"

func TestVerificationHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "_domain-verification.example.com"},
		{"example.com.", "_domain-verification.example.com"},
		{"shop.example.com", "_domain-verification.shop.example.com"},
	}
	for _, c := range cases {
		if got := VerificationHost(c.in); got != c.want {
			t.Errorf("VerificationHost(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTarget(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Edge.Platform.Example.NET.", "edge.platform.example.net"},
		{"edge.platform.example.net", "edge.platform.example.net"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeTarget(c.in); got != c.want {
			t.Errorf("NormalizeTarget(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
