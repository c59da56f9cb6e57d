package provisioner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.cloudflare.com/client/v4"

// CloudflareAdapter provisions custom hostnames through the Cloudflare
// custom_hostnames API (Cloudflare for SaaS). It implements Adapter.
type CloudflareAdapter struct {
	apiBase  string
	zoneID   string
	apiToken string
	http     *http.Client
}

// NewCloudflareAdapter creates a CloudflareAdapter for the given zone.
// apiBase may be empty to use the public Cloudflare endpoint.
func NewCloudflareAdapter(apiBase, zoneID, apiToken string, timeout time.Duration) *CloudflareAdapter {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &CloudflareAdapter{
		apiBase:  strings.TrimSuffix(apiBase, "/"),
		zoneID:   zoneID,
		apiToken: apiToken,
		http:     &http.Client{Timeout: timeout},
	}
}

// customHostnameResult is the subset of the API response the lifecycle needs.
type customHostnameResult struct {
	ID                 string   `json:"id"`
	Hostname           string   `json:"hostname"`
	Status             string   `json:"status"`
	VerificationErrors []string `json:"verification_errors"`
}

type apiEnvelope struct {
	Success bool                 `json:"success"`
	Result  customHostnameResult `json:"result"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateCustomHostname implements Adapter.
func (a *CloudflareAdapter) CreateCustomHostname(ctx context.Context, hostname string) (string, error) {
	body := map[string]any{
		"hostname": hostname,
		"ssl": map[string]string{
			"method": "http",
			"type":   "dv",
		},
	}
	env, err := a.do(ctx, http.MethodPost, "/zones/"+a.zoneID+"/custom_hostnames", body)
	if err != nil {
		return "", err
	}
	if env.Result.ID == "" {
		return "", fmt.Errorf("cloudflare accepted %s but returned no hostname id", hostname)
	}
	return env.Result.ID, nil
}

// GetCustomHostnameStatus implements Adapter.
func (a *CloudflareAdapter) GetCustomHostnameStatus(ctx context.Context, id string) (*HostnameStatus, error) {
	env, err := a.do(ctx, http.MethodGet, "/zones/"+a.zoneID+"/custom_hostnames/"+id, nil)
	if err != nil {
		return nil, err
	}
	return &HostnameStatus{
		Status:             env.Result.Status,
		VerificationErrors: env.Result.VerificationErrors,
	}, nil
}

// DeleteCustomHostname implements Adapter.
func (a *CloudflareAdapter) DeleteCustomHostname(ctx context.Context, id string) error {
	_, err := a.do(ctx, http.MethodDelete, "/zones/"+a.zoneID+"/custom_hostnames/"+id, nil)
	return err
}

func (a *CloudflareAdapter) do(ctx context.Context, method, path string, body any) (*apiEnvelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.apiBase+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudflare request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read cloudflare response: %w", err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode cloudflare response (HTTP %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			msgs := make([]string, 0, len(env.Errors))
			for _, e := range env.Errors {
				msgs = append(msgs, e.Message)
			}
			return nil, fmt.Errorf("cloudflare error (HTTP %d): %s", resp.StatusCode, strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("cloudflare error (HTTP %d)", resp.StatusCode)
	}
	return &env, nil
}
