package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// POST /admin/users/:id/role
// body: { "new_role": "brand" | "creator" | "admin" | "user" }
func (h *AdminHandler) ChangeUserRole(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		NewRole string `json:"new_role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, err := h.adminService.ChangeUserRole(c.Request.Context(), id, req.NewRole)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// PATCH /admin/profiles/:id
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	view, err := h.adminService.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": view})
}

// POST /admin/disputes/:id/resolve
// body: { "verdict": "approve" | "reject", "resolution": "..." }
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Verdict    string `json:"verdict"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("malformed request body"))
		return
	}
	result, err := h.adminService.ResolveDispute(c.Request.Context(), id, req.Verdict, req.Resolution)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"dispute": result.Dispute, "delivery": result.Delivery})
}

// GET /admin/audit?limit=100
func (h *AdminHandler) ListAudit(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.adminService.ListAudit(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"entries": entries})
}
