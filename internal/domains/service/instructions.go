package service

import (
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
	"github.com/kanakkholwal/custom-domain-sdk/internal/dnslookup"
)

// DNSInstruction describes a single DNS record the domain owner must publish.
type DNSInstruction struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Instructions is the read projection every lifecycle operation returns:
// current status, human-readable next-step guidance, and whatever DNS
// records the owner still has to publish. It is recomputed on every read
// and never persisted.
type Instructions struct {
	Hostname     string          `json:"hostname"`
	Status       model.Status    `json:"status"`
	Message      string          `json:"message"`
	Verification *DNSInstruction `json:"verification,omitempty"`
	Provisioning *DNSInstruction `json:"provisioning,omitempty"`
}

var statusMessages = map[model.Status]string{
	model.StatusCreated:             "Domain registered. Verification is about to begin.",
	model.StatusPendingVerification: "Publish the verification TXT record, then request a verification check.",
	model.StatusVerified:            "Ownership verified. Request DNS instructions to point your domain at the platform.",
	model.StatusPendingDNS:          "Publish the CNAME record, then request SSL provisioning.",
	model.StatusProvisioningSSL:     "SSL certificate is being provisioned. Poll status until the domain is active.",
	model.StatusActive:              "Domain is active and serving traffic.",
	model.StatusFailed:              "Domain setup failed. See last_error for details.",
}

const fallbackMessage = "Unrecognized domain status."

// render builds the Instructions projection for a record.
func (s *DomainService) render(rec *model.Record) *Instructions {
	inst := &Instructions{
		Hostname: rec.Hostname,
		Status:   rec.Status,
		Message:  statusMessages[rec.Status],
	}
	if inst.Message == "" {
		inst.Message = fallbackMessage
	}

	switch rec.Status {
	case model.StatusPendingVerification:
		inst.Verification = &DNSInstruction{
			Type:  "TXT",
			Name:  dnslookup.VerificationHost(rec.Hostname),
			Value: rec.VerificationToken,
		}
	case model.StatusPendingDNS, model.StatusProvisioningSSL:
		inst.Provisioning = &DNSInstruction{
			Type:  "CNAME",
			Name:  rec.Hostname,
			Value: s.cnameTarget,
		}
	}
	return inst
}
