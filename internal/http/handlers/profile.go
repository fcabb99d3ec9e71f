package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// POST /profile/select
// body: { "type": "brand" | "creator" }
func (h *ProfileHandler) Select(c *gin.Context) {
	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, alreadyExists, err := h.profileService.Select(c.Request.Context(), req.Type)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view, "already_exists": alreadyExists})
}

// GET /profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	view, err := h.profileService.Me(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// PATCH /profile
// body: arbitrary field map; undeclared fields are dropped by the sanitizer.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, err := h.profileService.Update(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// POST /profile/onboarding/step
// body: { "step": 1..5, "fields": {...} }
func (h *ProfileHandler) OnboardingStep(c *gin.Context) {
	var req struct {
		Step   int                    `json:"step"`
		Fields map[string]interface{} `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, err := h.profileService.AdvanceOnboarding(c.Request.Context(), req.Step, req.Fields)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// POST /profile/onboarding/finalize
func (h *ProfileHandler) Finalize(c *gin.Context) {
	view, err := h.profileService.Finalize(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// POST /profile/switch
// body: { "type": "brand" | "creator" }
func (h *ProfileHandler) Switch(c *gin.Context) {
	var req struct {
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, err := h.profileService.Switch(c.Request.Context(), req.Type)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}
