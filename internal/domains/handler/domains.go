// Package handler exposes the domain lifecycle over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/service"
	"go.uber.org/zap"
)

// DomainHandler handles HTTP requests for the custom domain lifecycle.
type DomainHandler struct {
	svc    *service.DomainService
	logger *zap.Logger
}

// NewDomainHandler creates a new DomainHandler.
func NewDomainHandler(svc *service.DomainService, logger *zap.Logger) *DomainHandler {
	return &DomainHandler{svc: svc, logger: logger}
}

// Register mounts the domain lifecycle routes on the given router group.
func (h *DomainHandler) Register(rg *gin.RouterGroup) {
	domains := rg.Group("/domains")
	{
		domains.POST("", h.CreateDomain)
		domains.GET("/:hostname", h.GetStatus)
		domains.POST("/:hostname/verify", h.CheckVerification)
		domains.POST("/:hostname/dns", h.GetDNSInstructions)
		domains.POST("/:hostname/provision", h.ProvisionDomain)
		domains.POST("/:hostname/sync", h.SyncStatus)
	}
}

// CreateDomain handles POST /domains.
//
// Request body: {"hostname": "shop.example.com"}
//
// Response: lifecycle instructions including the TXT record the owner must
// publish before requesting verification.
func (h *DomainHandler) CreateDomain(c *gin.Context) {
	var req struct {
		Hostname string `json:"hostname" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, err := h.svc.CreateDomain(c.Request.Context(), req.Hostname)
	if err != nil {
		h.respondError(c, err, "create domain")
		return
	}
	RecordTransition(inst.Status.String())
	c.JSON(http.StatusCreated, inst)
}

// GetStatus handles GET /domains/:hostname — pure read, no mutation.
func (h *DomainHandler) GetStatus(c *gin.Context) {
	inst, err := h.svc.GetStatus(c.Request.Context(), c.Param("hostname"))
	if err != nil {
		h.respondError(c, err, "get domain status")
		return
	}
	c.JSON(http.StatusOK, inst)
}

// CheckVerification handles POST /domains/:hostname/verify.
// It performs the DNS TXT lookup and advances the record on success.
func (h *DomainHandler) CheckVerification(c *gin.Context) {
	inst, err := h.svc.CheckVerification(c.Request.Context(), c.Param("hostname"))
	if err != nil {
		h.respondError(c, err, "check verification")
		return
	}
	RecordTransition(inst.Status.String())
	c.JSON(http.StatusOK, inst)
}

// GetDNSInstructions handles POST /domains/:hostname/dns — advances a
// verified domain to pending_dns and returns the CNAME record to publish.
func (h *DomainHandler) GetDNSInstructions(c *gin.Context) {
	inst, err := h.svc.GetDNSInstructions(c.Request.Context(), c.Param("hostname"))
	if err != nil {
		h.respondError(c, err, "dns instructions")
		return
	}
	RecordTransition(inst.Status.String())
	c.JSON(http.StatusOK, inst)
}

// ProvisionDomain handles POST /domains/:hostname/provision.
func (h *DomainHandler) ProvisionDomain(c *gin.Context) {
	inst, err := h.svc.ProvisionDomain(c.Request.Context(), c.Param("hostname"))
	if err != nil {
		h.respondError(c, err, "provision domain")
		return
	}
	RecordTransition(inst.Status.String())
	c.JSON(http.StatusOK, inst)
}

// SyncStatus handles POST /domains/:hostname/sync — polls the provider and
// reconciles the lifecycle with its answer.
func (h *DomainHandler) SyncStatus(c *gin.Context) {
	inst, err := h.svc.SyncStatus(c.Request.Context(), c.Param("hostname"))
	if err != nil {
		h.respondError(c, err, "sync status")
		return
	}
	RecordTransition(inst.Status.String())
	c.JSON(http.StatusOK, inst)
}

// respondError maps lifecycle errors onto HTTP statuses. Provider errors
// and anything unrecognized surface as 502/500 with the message intact so
// polling callers can drive their own retry policy.
func (h *DomainHandler) respondError(c *gin.Context, err error, op string) {
	var transitionErr *model.InvalidTransitionError
	var verificationErr *model.VerificationError

	switch {
	case errors.Is(err, service.ErrDomainNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "domain not found"})
	case errors.Is(err, service.ErrEmptyHostname):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"error": transitionErr.Error(),
			"from":  transitionErr.From,
			"to":    transitionErr.To,
		})
	case errors.As(err, &verificationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    verificationErr.Error(),
			"expected": verificationErr.Expected,
			"actual":   verificationErr.Actual,
		})
	case errors.Is(err, service.ErrNoProviderReference):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error(op, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
