package app

import (
	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		AllowOrigins:        cfg.AllowOrigins,
		AuthMiddleware:      m.Auth,
		HealthHandler:       h.Health,
		ProfileHandler:      h.Profile,
		CampaignHandler:     h.Campaign,
		ApplicationHandler:  h.Application,
		DeliveryHandler:     h.Delivery,
		AdminHandler:        h.Admin,
		BillingHandler:      h.Billing,
		NotificationHandler: h.Notification,
		MissionHandler:      h.Mission,
	})
}
