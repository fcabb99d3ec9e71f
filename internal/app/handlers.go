package app

import (
	"github.com/PontyConecta/ponty-conecta-sub002/internal/http/handlers"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Profile      *handlers.ProfileHandler
	Campaign     *handlers.CampaignHandler
	Application  *handlers.ApplicationHandler
	Delivery     *handlers.DeliveryHandler
	Admin        *handlers.AdminHandler
	Billing      *handlers.BillingHandler
	Notification *handlers.NotificationHandler
	Mission      *handlers.MissionHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Profile:      handlers.NewProfileHandler(s.Profile),
		Campaign:     handlers.NewCampaignHandler(s.Campaign),
		Application:  handlers.NewApplicationHandler(s.Application),
		Delivery:     handlers.NewDeliveryHandler(s.Delivery),
		Admin:        handlers.NewAdminHandler(s.Admin),
		Billing:      handlers.NewBillingHandler(s.Billing),
		Notification: handlers.NewNotificationHandler(s.Notification),
		Mission:      handlers.NewMissionHandler(s.Mission),
	}
}
