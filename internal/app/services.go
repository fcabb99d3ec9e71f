package app

import (
	"github.com/PontyConecta/ponty-conecta-sub002/internal/audit"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/avatar"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/clients/analytics"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/clients/payments"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/services"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
)

type Services struct {
	Profile      services.ProfileService
	Campaign     services.CampaignService
	Application  services.ApplicationService
	Delivery     services.DeliveryService
	Admin        services.AdminService
	Billing      services.BillingService
	Notification services.NotificationService
	Mission      services.MissionService

	Dispatcher *tasks.Dispatcher
	Analytics  *analytics.Client
}

func wireServices(log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	sagaExec := saga.NewExecutor(log)
	auditRec := audit.NewRecorder(log, r.AuditLog)
	dispatcher := tasks.NewDispatcher(log, cfg.TaskWorkers, cfg.TaskTimeout)
	avatarGen := avatar.NewGenerator(log, cfg.AvatarFont)
	analyticsClient := analytics.New(log, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	paymentsClient := payments.New(log, payments.Config{
		BaseURL:       cfg.Payments.BaseURL,
		SecretKey:     cfg.Payments.SecretKey,
		WebhookSecret: cfg.Payments.WebhookSecret,
	})

	switcher := services.NewProfileSwitcher(log, r.Brand, r.Creator, sagaExec, auditRec)
	notification := services.NewNotificationService(log, r.Notification)
	mission := services.NewMissionService(log, r.Mission, r.Brand, r.Creator)

	return Services{
		Profile:      services.NewProfileService(log, r.User, r.Brand, r.Creator, switcher, mission, dispatcher, avatarGen, analyticsClient),
		Campaign:     services.NewCampaignService(log, r.Campaign, r.Brand, r.Creator),
		Application:  services.NewApplicationService(log, r.Application, r.Campaign, r.Delivery, r.Brand, r.Creator, sagaExec, notification, dispatcher),
		Delivery:     services.NewDeliveryService(log, r.Delivery, r.Dispute, r.Brand, r.Creator, sagaExec, notification, dispatcher),
		Admin:        services.NewAdminService(log, r.User, r.Brand, r.Creator, r.Dispute, r.Delivery, r.AuditLog, switcher, sagaExec, auditRec, notification, dispatcher),
		Billing:      services.NewBillingService(log, r.Brand, r.Creator, paymentsClient, auditRec),
		Notification: notification,
		Mission:      mission,
		Dispatcher:   dispatcher,
		Analytics:    analyticsClient,
	}
}
