package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/handler"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/repository"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/service"
	"github.com/kanakkholwal/custom-domain-sdk/internal/provisioner"
	"go.uber.org/zap"
)

// ── Stub collaborators ─────────────────────────────────────────────────────

type stubResolver struct {
	txt   map[string][]string
	cname map[string][]string
}

func (r *stubResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	return r.txt[name], nil
}

func (r *stubResolver) LookupCNAME(_ context.Context, name string) ([]string, error) {
	return r.cname[name], nil
}

func (r *stubResolver) LookupA(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type stubAdapter struct {
	status *provisioner.HostnameStatus
}

func (a *stubAdapter) CreateCustomHostname(_ context.Context, _ string) (string, error) {
	return "ch-1", nil
}

func (a *stubAdapter) GetCustomHostnameStatus(_ context.Context, _ string) (*provisioner.HostnameStatus, error) {
	if a.status == nil {
		return nil, errors.New("provider unreachable")
	}
	return a.status, nil
}

func (a *stubAdapter) DeleteCustomHostname(_ context.Context, _ string) error { return nil }

// ── Harness ────────────────────────────────────────────────────────────────

type harness struct {
	router   *gin.Engine
	store    *repository.MemoryStore
	resolver *stubResolver
	adapter  *stubAdapter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		store: repository.NewMemoryStore(),
		resolver: &stubResolver{
			txt:   make(map[string][]string),
			cname: make(map[string][]string),
		},
		adapter: &stubAdapter{},
	}

	svc, err := service.NewDomainService(h.store, h.resolver, h.adapter, "edge.platform.example.net", zap.NewNop())
	if err != nil {
		t.Fatalf("NewDomainService: %v", err)
	}

	h.router = gin.New()
	api := h.router.Group("/api/v1")
	handler.NewDomainHandler(svc, zap.NewNop()).Register(api)
	return h
}

func (h *harness) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeInstructions(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestCreateDomain_returnsCreatedWithTXT(t *testing.T) {
	h := newHarness(t)

	w := h.request(t, http.MethodPost, "/api/v1/domains", `{"hostname":"a.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	out := decodeInstructions(t, w)
	if out["status"] != "pending_verification" {
		t.Errorf("status = %v", out["status"])
	}
	if out["verification"] == nil {
		t.Error("expected verification instruction in response")
	}
}

func TestCreateDomain_missingHostname(t *testing.T) {
	h := newHarness(t)
	if w := h.request(t, http.MethodPost, "/api/v1/domains", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGetStatus_unknownDomain(t *testing.T) {
	h := newHarness(t)
	if w := h.request(t, http.MethodGet, "/api/v1/domains/missing.example.com", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCheckVerification_tokenMissingIs422(t *testing.T) {
	h := newHarness(t)
	h.request(t, http.MethodPost, "/api/v1/domains", `{"hostname":"a.com"}`)

	w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/verify", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLifecycle_happyPathOverHTTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.request(t, http.MethodPost, "/api/v1/domains", `{"hostname":"a.com"}`)

	rec, err := h.store.Lookup(ctx, "a.com")
	if err != nil {
		t.Fatal(err)
	}
	h.resolver.txt["_domain-verification.a.com"] = []string{rec.VerificationToken}

	if w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/verify", ""); w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}
	if w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/dns", ""); w.Code != http.StatusOK {
		t.Fatalf("dns: %d %s", w.Code, w.Body.String())
	}

	h.resolver.cname["a.com"] = []string{"edge.platform.example.net"}
	if w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/provision", ""); w.Code != http.StatusOK {
		t.Fatalf("provision: %d %s", w.Code, w.Body.String())
	}

	h.adapter.status = &provisioner.HostnameStatus{Status: provisioner.StatusActive}
	w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/sync", "")
	if w.Code != http.StatusOK {
		t.Fatalf("sync: %d %s", w.Code, w.Body.String())
	}
	if out := decodeInstructions(t, w); out["status"] != "active" {
		t.Errorf("final status = %v", out["status"])
	}
}

func TestOutOfOrderOperationIs409(t *testing.T) {
	h := newHarness(t)
	h.request(t, http.MethodPost, "/api/v1/domains", `{"hostname":"a.com"}`)

	// Provisioning before verification must be rejected deterministically.
	w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/provision", "")
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
	out := decodeInstructions(t, w)
	if out["from"] != string(model.StatusPendingVerification) {
		t.Errorf("from = %v", out["from"])
	}
}

func TestSyncStatus_providerErrorIs502(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.request(t, http.MethodPost, "/api/v1/domains", `{"hostname":"a.com"}`)
	rec, _ := h.store.Lookup(ctx, "a.com")
	h.resolver.txt["_domain-verification.a.com"] = []string{rec.VerificationToken}
	h.request(t, http.MethodPost, "/api/v1/domains/a.com/verify", "")
	h.request(t, http.MethodPost, "/api/v1/domains/a.com/dns", "")
	h.resolver.cname["a.com"] = []string{"edge.platform.example.net"}
	h.request(t, http.MethodPost, "/api/v1/domains/a.com/provision", "")

	// stubAdapter returns an error while status is nil.
	h.adapter.status = nil
	if w := h.request(t, http.MethodPost, "/api/v1/domains/a.com/sync", ""); w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
