package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
)

type MissionHandler struct {
	missionService services.MissionService
}

func NewMissionHandler(missionService services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// GET /missions
func (h *MissionHandler) List(c *gin.Context) {
	missions, err := h.missionService.ListMine(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"missions": missions})
}
