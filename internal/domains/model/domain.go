// Package model defines the custom domain record, its lifecycle state
// machine, and the structured errors shared across the domains packages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted state of one custom domain attached to the
// platform. There is exactly one record per normalized hostname.
//
// ID and VerificationToken are assigned at creation and never change.
// Status only ever moves along edges of the lifecycle state machine.
// ProviderHostnameID is set once the provisioning adapter accepts a create
// request and is never cleared afterwards. LastError is set when the record
// enters failed and overwritten on a later failure, never cleared.
type Record struct {
	ID                 uuid.UUID `json:"id"`
	Hostname           string    `json:"hostname"`
	Status             Status    `json:"status"`
	VerificationToken  string    `json:"verification_token"`
	ProviderHostnameID string    `json:"provider_hostname_id,omitempty"`
	LastError          string    `json:"last_error,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NormalizeHostname canonicalizes a user-supplied hostname: trims
// whitespace, lower-cases, and strips a single trailing slash. Both the
// service and the store apply it, so lookups succeed regardless of caller
// discipline.
func NormalizeHostname(hostname string) string {
	h := strings.ToLower(strings.TrimSpace(hostname))
	return strings.TrimSuffix(h, "/")
}
