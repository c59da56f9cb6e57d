package dnslookup

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NetResolver resolves through the process's configured DNS servers.
type NetResolver struct {
	r *net.Resolver
}

// NewNetResolver creates a NetResolver backed by the default stub resolver.
func NewNetResolver() *NetResolver {
	return &NetResolver{r: &net.Resolver{}}
}

// LookupTXT implements Resolver.
func (n *NetResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	txts, err := n.r.LookupTXT(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("TXT lookup for %s: %w", name, err)
	}
	return txts, nil
}

// LookupCNAME implements Resolver. The stub resolver reports at most one
// canonical name per hostname.
func (n *NetResolver) LookupCNAME(ctx context.Context, name string) ([]string, error) {
	cname, err := n.r.LookupCNAME(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("CNAME lookup for %s: %w", name, err)
	}
	// LookupCNAME answers with the queried name itself when the zone has no
	// CNAME record; that is a "no record" result, not an alias.
	if cname == "" || NormalizeTarget(cname) == NormalizeTarget(name) {
		return nil, nil
	}
	return []string{NormalizeTarget(cname)}, nil
}

// LookupA implements Resolver. Only IPv4 addresses are returned; the edge
// publishes A records, not AAAA.
func (n *NetResolver) LookupA(ctx context.Context, name string) ([]string, error) {
	ips, err := n.r.LookupIP(ctx, "ip4", name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("A lookup for %s: %w", name, err)
	}
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}
	return addrs, nil
}

// isNotFound distinguishes "no such record" from genuine resolution
// failures. Only the former maps to an empty result set.
func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}
