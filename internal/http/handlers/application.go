package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type ApplicationHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// POST /applications
// body: { "campaign_id": uuid, "pitch": "...", "proposed_rate": 100 }
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req struct {
		CampaignID   string  `json:"campaign_id"`
		Pitch        string  `json:"pitch"`
		ProposedRate float64 `json:"proposed_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		RespondError(c, apierr.MissingFields("campaign_id is required"))
		return
	}
	application, err := h.applicationService.Apply(c.Request.Context(), campaignID, req.Pitch, req.ProposedRate)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"application": application})
}

// POST /applications/:id/manage
// body: { "action": "withdraw" | "reject" | "accept" }
func (h *ApplicationHandler) Manage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	result, err := h.applicationService.Manage(c.Request.Context(), id, req.Action)
	if err != nil {
		RespondError(c, err)
		return
	}
	payload := gin.H{"application": result.Application}
	if result.Delivery != nil {
		payload["delivery"] = result.Delivery
	}
	RespondOK(c, payload)
}

// GET /applications
func (h *ApplicationHandler) List(c *gin.Context) {
	applications, err := h.applicationService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"applications": applications})
}
