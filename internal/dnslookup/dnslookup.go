// Package dnslookup resolves the DNS records the domain lifecycle depends
// on: the ownership TXT token and the CNAME/A records pointing a customer
// hostname at the platform edge.
package dnslookup

import (
	"context"
	"strings"
)

// Resolver answers the lookups the lifecycle service performs. It never
// guesses intent between record types; each method resolves exactly one.
//
// Implementations must return an empty slice and a nil error when the name
// genuinely has no records of the requested type, and a non-nil error only
// for transport or resolution failures. CNAME answers must be lower-cased
// with the trailing dot stripped so they compare cleanly against a
// configured target.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupCNAME(ctx context.Context, name string) ([]string, error)
	LookupA(ctx context.Context, name string) ([]string, error)
}

const verificationPrefix = "_domain-verification."

// VerificationHost returns the DNS name where the ownership TXT record must
// be published for hostname.
func VerificationHost(hostname string) string {
	return verificationPrefix + strings.TrimSuffix(hostname, ".")
}

// NormalizeTarget lower-cases a DNS answer and strips the trailing dot.
func NormalizeTarget(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}
