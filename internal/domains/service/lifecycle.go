// Package service orchestrates the custom domain lifecycle: ownership
// verification via DNS TXT, CNAME provisioning guidance, and SSL issuance
// delegated to an external provider.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kanakkholwal/custom-domain-sdk/internal/dnslookup"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/repository"
	"github.com/kanakkholwal/custom-domain-sdk/internal/provisioner"
	"go.uber.org/zap"
)

// Sentinel errors for the domain lifecycle service.
var (
	ErrDomainNotFound      = errors.New("domain not found")
	ErrEmptyHostname       = errors.New("hostname must not be empty")
	ErrNoProviderReference = errors.New("no provider hostname reference recorded for domain")
	ErrMisconfigured       = errors.New("domain service misconfigured")
)

// DomainService drives a custom domain through its lifecycle. Every status
// mutation is validated against the state machine before it reaches the
// store, so illegal states are unrepresentable in persisted data.
//
// The service holds no cross-call state: each operation re-reads the
// record, works on a copy, and writes back through the store. It performs
// no retries and imposes no timeouts; collaborators own both.
type DomainService struct {
	store       repository.Store
	resolver    dnslookup.Resolver
	adapter     provisioner.Adapter
	cnameTarget string
	logger      *zap.Logger
}

// NewDomainService creates a DomainService. cnameTarget is the edge
// hostname every customer domain must point at.
func NewDomainService(store repository.Store, resolver dnslookup.Resolver, adapter provisioner.Adapter, cnameTarget string, logger *zap.Logger) (*DomainService, error) {
	switch {
	case store == nil:
		return nil, fmt.Errorf("%w: store is required", ErrMisconfigured)
	case resolver == nil:
		return nil, fmt.Errorf("%w: dns resolver is required", ErrMisconfigured)
	case adapter == nil:
		return nil, fmt.Errorf("%w: provisioning adapter is required", ErrMisconfigured)
	case cnameTarget == "":
		return nil, fmt.Errorf("%w: cname target is required", ErrMisconfigured)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DomainService{
		store:       store,
		resolver:    resolver,
		adapter:     adapter,
		cnameTarget: dnslookup.NormalizeTarget(cnameTarget),
		logger:      logger,
	}, nil
}

// CreateDomain registers a hostname and immediately moves it to
// pending_verification. Calling it again for an existing hostname returns
// the current instructions unchanged.
func (s *DomainService) CreateDomain(ctx context.Context, hostname string) (*Instructions, error) {
	host := model.NormalizeHostname(hostname)
	if host == "" {
		return nil, ErrEmptyHostname
	}

	if rec, err := s.store.Lookup(ctx, host); err == nil {
		return s.render(rec), nil // idempotent create
	} else if !errors.Is(err, repository.ErrDomainNotFound) {
		return nil, fmt.Errorf("lookup domain: %w", err)
	}

	token, err := model.NewVerificationToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &model.Record{
		ID:                uuid.New(),
		Hostname:          host,
		Status:            model.StatusCreated,
		VerificationToken: token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The record never rests in created: it advances to pending_verification
	// before the single store write.
	if err := model.AssertTransition(rec.Status, model.StatusPendingVerification); err != nil {
		return nil, err
	}
	rec.Status = model.StatusPendingVerification

	stored, err := s.store.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("persist domain: %w", err)
	}

	s.logger.Info("domain registered",
		zap.String("hostname", host),
		zap.String("txt_host", dnslookup.VerificationHost(host)),
	)
	return s.render(stored), nil
}

// CheckVerification looks for the record's verification token among the TXT
// records at the well-known verification subdomain. On a match the record
// becomes verified; on a miss a *model.VerificationError is returned and
// the status does not change. Already-verified records short-circuit.
func (s *DomainService) CheckVerification(ctx context.Context, hostname string) (*Instructions, error) {
	rec, err := s.load(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if rec.Status == model.StatusVerified {
		return s.render(rec), nil // idempotent
	}
	if err := model.AssertTransition(rec.Status, model.StatusVerified); err != nil {
		return nil, err
	}

	host := dnslookup.VerificationHost(rec.Hostname)
	txts, err := s.resolver.LookupTXT(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}

	found := false
	for _, txt := range txts {
		if txt == rec.VerificationToken {
			found = true
			break
		}
	}
	if !found {
		return nil, &model.VerificationError{
			Hostname: rec.Hostname,
			Expected: rec.VerificationToken,
			Actual:   txts,
		}
	}

	inst, err := s.applyTransition(ctx, rec, model.StatusVerified, "")
	if err != nil {
		return nil, err
	}
	s.logger.Info("domain ownership verified", zap.String("hostname", rec.Hostname))
	return inst, nil
}

// GetDNSInstructions advances a verified domain to pending_dns and hands
// the caller the CNAME target to publish. No external check happens here.
// Already-pending_dns records short-circuit.
func (s *DomainService) GetDNSInstructions(ctx context.Context, hostname string) (*Instructions, error) {
	rec, err := s.load(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if rec.Status == model.StatusPendingDNS {
		return s.render(rec), nil // idempotent
	}
	return s.applyTransition(ctx, rec, model.StatusPendingDNS, "")
}

// ProvisionDomain re-checks DNS reality, then asks the provider to create
// the custom hostname resource. The DNS check passes when a CNAME matches
// the configured target or, for apex domains that cannot carry one, when
// any A record exists. On a provider failure the record moves to failed and
// the provider's original error is returned to the caller.
// Already-provisioning_ssl records short-circuit.
func (s *DomainService) ProvisionDomain(ctx context.Context, hostname string) (*Instructions, error) {
	rec, err := s.load(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if rec.Status == model.StatusProvisioningSSL {
		return s.render(rec), nil // idempotent
	}
	if err := model.AssertTransition(rec.Status, model.StatusProvisioningSSL); err != nil {
		return nil, err
	}

	cnames, err := s.resolver.LookupCNAME(ctx, rec.Hostname)
	if err != nil {
		return nil, fmt.Errorf("resolve CNAME for %s: %w", rec.Hostname, err)
	}
	matched := false
	for _, cname := range cnames {
		if dnslookup.NormalizeTarget(cname) == s.cnameTarget {
			matched = true
			break
		}
	}
	if !matched {
		addrs, err := s.resolver.LookupA(ctx, rec.Hostname)
		if err != nil {
			return nil, fmt.Errorf("resolve A for %s: %w", rec.Hostname, err)
		}
		if len(addrs) == 0 {
			// No provider call is made and the status does not move.
			return nil, &model.VerificationError{
				Hostname: rec.Hostname,
				Expected: s.cnameTarget,
				Actual:   cnames,
			}
		}
	}

	refID, err := s.adapter.CreateCustomHostname(ctx, rec.Hostname)
	if err != nil {
		// Record the failure, then surface the provider's original error.
		if _, perr := s.applyTransition(ctx, rec, model.StatusFailed, err.Error()); perr != nil {
			s.logger.Error("record provisioning failure",
				zap.String("hostname", rec.Hostname),
				zap.Error(perr),
			)
		}
		return nil, err
	}

	next := *rec
	next.ProviderHostnameID = refID
	inst, err := s.applyTransition(ctx, &next, model.StatusProvisioningSSL, "")
	if err != nil {
		return nil, err
	}
	s.logger.Info("ssl provisioning started",
		zap.String("hostname", rec.Hostname),
		zap.String("provider_hostname_id", refID),
	)
	return inst, nil
}

// SyncStatus polls the provider for the state of a provisioning domain.
// Provider-reported active and failed map onto the lifecycle; anything else
// means still in progress and nothing moves. Provider errors are never
// swallowed: a poller must see transient failures, not silently stale
// status. Already-active records short-circuit.
func (s *DomainService) SyncStatus(ctx context.Context, hostname string) (*Instructions, error) {
	rec, err := s.load(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if rec.Status == model.StatusActive {
		return s.render(rec), nil // idempotent
	}
	if rec.ProviderHostnameID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoProviderReference, rec.Hostname)
	}

	st, err := s.adapter.GetCustomHostnameStatus(ctx, rec.ProviderHostnameID)
	if err != nil {
		return nil, err
	}

	switch st.Status {
	case provisioner.StatusActive:
		inst, err := s.applyTransition(ctx, rec, model.StatusActive, "")
		if err != nil {
			return nil, err
		}
		s.logger.Info("domain active", zap.String("hostname", rec.Hostname))
		return inst, nil
	case provisioner.StatusFailed:
		return s.applyTransition(ctx, rec, model.StatusFailed, strings.Join(st.VerificationErrors, "; "))
	default:
		return s.render(rec), nil // still in progress
	}
}

// GetStatus is a pure read: it loads the record and renders instructions.
func (s *DomainService) GetStatus(ctx context.Context, hostname string) (*Instructions, error) {
	rec, err := s.load(ctx, hostname)
	if err != nil {
		return nil, err
	}
	return s.render(rec), nil
}

func (s *DomainService) load(ctx context.Context, hostname string) (*model.Record, error) {
	rec, err := s.store.Lookup(ctx, model.NormalizeHostname(hostname))
	if err != nil {
		if errors.Is(err, repository.ErrDomainNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("lookup domain: %w", err)
	}
	return rec, nil
}

// applyTransition is the single funnel for status mutations: it validates
// the edge, stamps status and updated_at on a fresh copy, persists, and
// renders the store's post-write record so the store stays the source of
// truth for what the caller sees.
func (s *DomainService) applyTransition(ctx context.Context, rec *model.Record, to model.Status, lastError string) (*Instructions, error) {
	if err := model.AssertTransition(rec.Status, to); err != nil {
		return nil, err
	}

	next := *rec
	next.Status = to
	next.UpdatedAt = time.Now().UTC()
	if lastError != "" {
		next.LastError = lastError
	}

	stored, err := s.store.Update(ctx, &next)
	if err != nil {
		if errors.Is(err, repository.ErrDomainNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("persist transition %s -> %s: %w", rec.Status, to, err)
	}
	return s.render(stored), nil
}
