package model

import (
	"fmt"
	"strings"
)

// InvalidTransitionError reports a lifecycle transition that is not an edge
// of the state machine. It carries both endpoints for diagnostics.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition %s -> %s", e.From, e.To)
}

// VerificationError reports that published DNS records do not match what the
// lifecycle step requires: the ownership TXT token is absent, or neither a
// CNAME pointing at the configured target nor an A record exists.
type VerificationError struct {
	Hostname string
	Expected string
	Actual   []string
}

func (e *VerificationError) Error() string {
	actual := "none found"
	if len(e.Actual) > 0 {
		actual = strings.Join(e.Actual, ", ")
	}
	return fmt.Sprintf("dns verification failed for %s: expected %q, found %s",
		e.Hostname, e.Expected, actual)
}
