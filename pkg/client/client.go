// Package client is the Go SDK for the custom domain lifecycle API.
//
// It wraps the six lifecycle operations exposed by the server: registering
// a domain, checking ownership verification, fetching DNS instructions,
// requesting SSL provisioning, syncing provider status, and reading current
// status. Every call returns the same Instructions projection the API
// serves.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DNSInstruction is a DNS record the domain owner must publish.
type DNSInstruction struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Instructions is the lifecycle projection returned by every API call.
type Instructions struct {
	Hostname     string          `json:"hostname"`
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Verification *DNSInstruction `json:"verification,omitempty"`
	Provisioning *DNSInstruction `json:"provisioning,omitempty"`
}

// APIError is a non-2xx response from the lifecycle API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Client talks to a custom domain lifecycle API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client targeting baseURL. A zero timeout defaults to 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateDomain registers a hostname. Repeating the call for the same
// hostname returns the existing domain's instructions.
func (c *Client) CreateDomain(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodPost, "/api/v1/domains", map[string]string{"hostname": hostname})
}

// CheckVerification asks the server to look for the ownership TXT record.
func (c *Client) CheckVerification(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodPost, c.domainPath(hostname, "verify"), nil)
}

// GetDNSInstructions advances a verified domain and returns the CNAME to publish.
func (c *Client) GetDNSInstructions(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodPost, c.domainPath(hostname, "dns"), nil)
}

// ProvisionDomain requests SSL provisioning at the edge provider.
func (c *Client) ProvisionDomain(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodPost, c.domainPath(hostname, "provision"), nil)
}

// SyncStatus reconciles the lifecycle with the provider's reported state.
func (c *Client) SyncStatus(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodPost, c.domainPath(hostname, "sync"), nil)
}

// GetStatus reads the current lifecycle state without mutating anything.
func (c *Client) GetStatus(ctx context.Context, hostname string) (*Instructions, error) {
	return c.do(ctx, http.MethodGet, c.domainPath(hostname, ""), nil)
}

func (c *Client) domainPath(hostname, op string) string {
	p := "/api/v1/domains/" + url.PathEscape(hostname)
	if op != "" {
		p += "/" + op
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Instructions, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var inst Instructions
	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &inst, nil
}
