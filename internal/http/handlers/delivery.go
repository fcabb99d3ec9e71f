package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type DeliveryHandler struct {
	deliveryService services.DeliveryService
}

func NewDeliveryHandler(deliveryService services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// POST /deliveries/:id/submit
// body: { "proof_urls": ["https://..."], "note": "..." }
func (h *DeliveryHandler) Submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ProofURLs interface{} `json:"proof_urls"`
		Note      string      `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	delivery, err := h.deliveryService.Submit(c.Request.Context(), id, req.ProofURLs, req.Note)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"delivery": delivery})
}

// POST /deliveries/:id/contest
// body: { "reason": "..." }
func (h *DeliveryHandler) Contest(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	result, err := h.deliveryService.Contest(c.Request.Context(), id, req.Reason)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"delivery": result.Delivery, "dispute": result.Dispute})
}

// POST /deliveries/:id/review
// body: { "verdict": "approve" | "reject", "feedback": "..." }
func (h *DeliveryHandler) Review(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Verdict  string `json:"verdict"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	delivery, err := h.deliveryService.Review(c.Request.Context(), id, req.Verdict, req.Feedback)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"delivery": delivery})
}

// GET /deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	deliveries, err := h.deliveryService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deliveries": deliveries})
}
