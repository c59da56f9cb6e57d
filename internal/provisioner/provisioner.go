// Package provisioner abstracts the external edge provider that issues TLS
// certificates and accepts traffic for verified custom hostnames.
package provisioner

import "context"

// Provider-reported hostname states. Anything outside active/failed means
// the provider is still working and the lifecycle should not move.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusFailed  = "failed"
	StatusMoved   = "moved"
)

// HostnameStatus is a provider's view of a custom hostname resource.
type HostnameStatus struct {
	Status             string   `json:"status"`
	VerificationErrors []string `json:"verification_errors,omitempty"`
}

// Adapter creates, inspects and removes custom hostname resources at an
// external provider. Implementations own their own timeout and retry
// policy; the lifecycle service applies none.
type Adapter interface {
	// CreateCustomHostname registers hostname with the provider and returns
	// the provider's reference id for the new resource.
	CreateCustomHostname(ctx context.Context, hostname string) (string, error)

	// GetCustomHostnameStatus reports the current provider-side state of a
	// previously created resource.
	GetCustomHostnameStatus(ctx context.Context, id string) (*HostnameStatus, error)

	// DeleteCustomHostname removes the resource. The lifecycle service never
	// calls this; it exists for caller-driven cleanup.
	DeleteCustomHostname(ctx context.Context, id string) error
}
