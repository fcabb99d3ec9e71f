package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	campaign, err := h.campaignService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"campaign": campaign})
}

// PATCH /campaigns/:id
func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	campaign, err := h.campaignService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"campaign": campaign})
}

// POST /campaigns/:id/status
// body: { "status": "active" | "paused" | "completed" | "archived" }
func (h *CampaignHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	campaign, err := h.campaignService.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"campaign": campaign})
}

// GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"campaigns": campaigns})
}

// pathUUID parses the named path parameter, responding NOT_FOUND on garbage
// so unparseable IDs and missing rows are indistinguishable.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, apierr.NotFound("resource not found"))
		return uuid.Nil, false
	}
	return id, true
}
