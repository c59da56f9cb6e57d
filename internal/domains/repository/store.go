// Package repository provides persistence for custom domain records.
//
// Two implementations of the Store interface are provided:
//   - MemoryStore: in-process, for testing and development.
//   - PostgresStore: durable, for production use.
//
// The store is the sole durability boundary; it imposes no locking contract
// beyond per-call safety. Concurrent read-modify-write cycles against the
// same hostname are last-write-wins unless the deployment adds its own
// serialization at this boundary.
package repository

import (
	"context"
	"errors"

	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
)

// ErrDomainNotFound is returned when no record exists for a hostname.
var ErrDomainNotFound = errors.New("domain record not found")

// Store persists one Record per normalized hostname.
//
// Implementations must normalize the hostname key themselves and must
// return copies that share no memory with internally held state, so a
// caller mutating a returned record cannot alias the stored one.
type Store interface {
	// Lookup returns the record for hostname or ErrDomainNotFound.
	Lookup(ctx context.Context, hostname string) (*model.Record, error)

	// Create persists a new record and returns the stored copy. If a record
	// already exists for the hostname it is replaced; callers that need
	// create-once semantics must check with Lookup first.
	Create(ctx context.Context, rec *model.Record) (*model.Record, error)

	// Update replaces the record for rec.Hostname and returns the stored
	// copy, or ErrDomainNotFound if no record exists for that hostname.
	Update(ctx context.Context, rec *model.Record) (*model.Record, error)
}
