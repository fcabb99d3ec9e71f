package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type BillingHandler struct {
	billingService services.BillingService
}

func NewBillingHandler(billingService services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// POST /billing/checkout
// body: { "plan": "..." }
func (h *BillingHandler) Checkout(c *gin.Context) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	url, err := h.billingService.Checkout(c.Request.Context(), req.Plan)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// POST /billing/portal
func (h *BillingHandler) Portal(c *gin.Context) {
	url, err := h.billingService.Portal(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// POST /billing/webhook
// Unauthenticated; trust comes from the provider signature header.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		RespondError(c, apierr.InvalidInput("unreadable payload"))
		return
	}
	signature := c.GetHeader("X-Provider-Signature")
	if err := h.billingService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"received": true})
}
