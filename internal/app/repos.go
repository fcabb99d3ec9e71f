package app

import (
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Brand        repos.BrandRepo
	Creator      repos.CreatorRepo
	Campaign     repos.CampaignRepo
	Application  repos.ApplicationRepo
	Delivery     repos.DeliveryRepo
	Dispute      repos.DisputeRepo
	AuditLog     repos.AuditLogRepo
	Notification repos.NotificationRepo
	Mission      repos.MissionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Brand:        repos.NewBrandRepo(db, log),
		Creator:      repos.NewCreatorRepo(db, log),
		Campaign:     repos.NewCampaignRepo(db, log),
		Application:  repos.NewApplicationRepo(db, log),
		Delivery:     repos.NewDeliveryRepo(db, log),
		Dispute:      repos.NewDisputeRepo(db, log),
		AuditLog:     repos.NewAuditLogRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
		Mission:      repos.NewMissionRepo(db, log),
	}
}
