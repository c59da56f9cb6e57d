package model

// Status is the lifecycle state of a custom domain record.
//
// A domain moves strictly forward through verification, DNS pointing and
// SSL provisioning. Active and failed are terminal; leaving failed again
// would need a migration plan for existing records, so the table has no
// retry edges.
type Status string

const (
	StatusCreated             Status = "created"
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
	StatusPendingDNS          Status = "pending_dns"
	StatusProvisioningSSL     Status = "provisioning_ssl"
	StatusActive              Status = "active"
	StatusFailed              Status = "failed"
)

// allowedTransitions defines the legal state machine edges.
// No transition outside this map is permitted.
var allowedTransitions = map[Status][]Status{
	StatusCreated:             {StatusPendingVerification},
	StatusPendingVerification: {StatusVerified, StatusFailed},
	StatusVerified:            {StatusPendingDNS},
	StatusPendingDNS:          {StatusProvisioningSSL, StatusFailed},
	StatusProvisioningSSL:     {StatusActive, StatusFailed},
	StatusActive:              {},
	StatusFailed:              {},
}

// CanTransition reports whether moving from one status to another is legal.
// Unknown statuses have no outgoing edges and always report false.
func CanTransition(from, to Status) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AssertTransition returns an *InvalidTransitionError if from → to is not a
// legal edge. It performs no mutation; applying the transition is the
// caller's responsibility.
func AssertTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// IsValid returns whether this is a recognized status value.
func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal returns whether this status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusActive || s == StatusFailed
}
