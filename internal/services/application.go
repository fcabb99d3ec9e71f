package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/transition"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

const (
	ApplicationActionWithdraw = "withdraw"
	ApplicationActionReject   = "reject"
	ApplicationActionAccept   = "accept"
)

// ManageResult carries the application after a manage action, plus the
// delivery created when the action was accept.
type ManageResult struct {
	Application *types.Application `json:"application"`
	Delivery    *types.Delivery    `json:"delivery,omitempty"`
}

type ApplicationService interface {
	Apply(ctx context.Context, campaignID uuid.UUID, pitch string, proposedRate float64) (*types.Application, error)
	Manage(ctx context.Context, applicationID uuid.UUID, action string) (*ManageResult, error)
	List(ctx context.Context) ([]*types.Application, error)
}

type applicationService struct {
	log           *logger.Logger
	applications  repos.ApplicationRepo
	campaigns     repos.CampaignRepo
	deliveries    repos.DeliveryRepo
	brands        repos.BrandRepo
	creators      repos.CreatorRepo
	saga          *saga.Executor
	notifications NotificationService
	dispatcher    *tasks.Dispatcher
}

func NewApplicationService(
	baseLog *logger.Logger,
	applications repos.ApplicationRepo,
	campaigns repos.CampaignRepo,
	deliveries repos.DeliveryRepo,
	brands repos.BrandRepo,
	creators repos.CreatorRepo,
	sagaExec *saga.Executor,
	notifications NotificationService,
	dispatcher *tasks.Dispatcher,
) ApplicationService {
	return &applicationService{
		log:           baseLog.With("service", "ApplicationService"),
		applications:  applications,
		campaigns:     campaigns,
		deliveries:    deliveries,
		brands:        brands,
		creators:      creators,
		saga:          sagaExec,
		notifications: notifications,
		dispatcher:    dispatcher,
	}
}

func (s *applicationService) Apply(ctx context.Context, campaignID uuid.UUID, pitch string, proposedRate float64) (*types.Application, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	creator, err := s.creators.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if creator == nil {
		return nil, apierr.Forbidden("creator profile required")
	}
	if strings.TrimSpace(pitch) == "" {
		return nil, apierr.MissingFields("pitch is required")
	}
	if proposedRate < 0 {
		return nil, apierr.InvalidInput("proposed_rate must be non-negative")
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if campaign == nil {
		return nil, apierr.NotFound("campaign not found")
	}
	if campaign.Status != types.CampaignStatusActive {
		return nil, apierr.Validation("campaign is not accepting applications")
	}
	dup, err := s.applications.GetActive(ctx, campaign.ID, creator.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if dup != nil {
		return nil, apierr.Validation("an application for this campaign already exists")
	}

	now := time.Now().UTC()
	row := &types.Application{
		ID:           uuid.New(),
		CampaignID:   campaign.ID,
		BrandID:      campaign.BrandID,
		CreatorID:    creator.ID,
		Pitch:        strings.TrimSpace(pitch),
		ProposedRate: proposedRate,
		Status:       types.ApplicationStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.applications.Create(ctx, []*types.Application{row}); err != nil {
		return nil, apierr.Internal(err)
	}

	s.notifyBrand(campaign.BrandID, types.NotificationKindApplicationReceived,
		"New application", "A creator applied to \""+campaign.Title+"\".",
		map[string]interface{}{"application_id": row.ID, "campaign_id": campaign.ID})
	return row, nil
}

func (s *applicationService) Manage(ctx context.Context, applicationID uuid.UUID, action string) (*ManageResult, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if app == nil {
		return nil, apierr.NotFound("application not found")
	}

	switch action {
	case ApplicationActionWithdraw:
		creator, err := s.creators.GetByUserID(ctx, id.UserID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if creator == nil || creator.ID != app.CreatorID {
			return nil, apierr.Forbidden("application belongs to another creator")
		}
		return s.moveStatus(ctx, app, types.ApplicationStatusWithdrawn)

	case ApplicationActionReject:
		if err := s.requireOwningBrand(ctx, id.UserID, app); err != nil {
			return nil, err
		}
		result, err := s.moveStatus(ctx, app, types.ApplicationStatusRejected)
		if err != nil {
			return nil, err
		}
		s.notifyCreator(app.CreatorID, types.NotificationKindApplicationDecided,
			"Application declined", "Your application was not selected.",
			map[string]interface{}{"application_id": app.ID})
		return result, nil

	case ApplicationActionAccept:
		if err := s.requireOwningBrand(ctx, id.UserID, app); err != nil {
			return nil, err
		}
		return s.accept(ctx, app)

	default:
		return nil, apierr.InvalidAction(action)
	}
}

func (s *applicationService) List(ctx context.Context) ([]*types.Application, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	view, err := resolveProfile(ctx, s.brands, s.creators, id.UserID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apierr.NotFound("no profile for user")
	}
	var out []*types.Application
	if view.Type == types.ProfileTypeBrand {
		out, err = s.applications.ListByBrandID(ctx, view.Brand.ID)
	} else {
		out, err = s.applications.ListByCreatorID(ctx, view.Creator.ID)
	}
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

// accept flips the application and opens the delivery as one compensated
// sequence. If the delivery create fails, the status flip is unwound.
func (s *applicationService) accept(ctx context.Context, app *types.Application) (*ManageResult, error) {
	if !transition.Allowed(transition.EntityApplication, app.Status, types.ApplicationStatusAccepted) {
		return nil, apierr.InvalidTransition(app.Status, types.ApplicationStatusAccepted)
	}
	campaign, err := s.campaigns.GetByID(ctx, app.CampaignID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if campaign == nil {
		return nil, apierr.NotFound("campaign not found")
	}

	now := time.Now().UTC()
	previousStatus := app.Status
	delivery := &types.Delivery{
		ID:         uuid.New(),
		CampaignID: app.CampaignID,
		BrandID:    app.BrandID,
		CreatorID:  app.CreatorID,
		Status:     types.DeliveryStatusPending,
		Deadline:   campaign.Deadline,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	steps := []saga.Step{
		{
			Name: "accept_application",
			Run: func(ctx context.Context) error {
				return s.applications.UpdateFields(ctx, app.ID, map[string]interface{}{
					"status": types.ApplicationStatusAccepted,
				})
			},
			Compensate: func(ctx context.Context) error {
				return s.applications.UpdateFields(ctx, app.ID, map[string]interface{}{
					"status": previousStatus,
				})
			},
		},
		{
			Name: "create_delivery",
			Run: func(ctx context.Context) error {
				_, err := s.deliveries.Create(ctx, []*types.Delivery{delivery})
				return err
			},
		},
	}
	if err := s.saga.Execute(ctx, "application_accept", steps); err != nil {
		return nil, sagaError(err)
	}

	updated, err := s.applications.GetByID(ctx, app.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.notifyCreator(app.CreatorID, types.NotificationKindApplicationDecided,
		"Application accepted", "You were selected for \""+campaign.Title+"\".",
		map[string]interface{}{"application_id": app.ID, "delivery_id": delivery.ID})
	return &ManageResult{Application: updated, Delivery: delivery}, nil
}

func (s *applicationService) moveStatus(ctx context.Context, app *types.Application, to string) (*ManageResult, error) {
	if !transition.Allowed(transition.EntityApplication, app.Status, to) {
		return nil, apierr.InvalidTransition(app.Status, to)
	}
	if err := s.applications.UpdateFields(ctx, app.ID, map[string]interface{}{"status": to}); err != nil {
		return nil, apierr.Internal(err)
	}
	updated, err := s.applications.GetByID(ctx, app.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return &ManageResult{Application: updated}, nil
}

func (s *applicationService) requireOwningBrand(ctx context.Context, userID uuid.UUID, app *types.Application) error {
	brand, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return apierr.Internal(err)
	}
	if brand == nil || brand.ID != app.BrandID {
		return apierr.Forbidden("application belongs to another brand")
	}
	return nil
}

func (s *applicationService) notifyBrand(brandID uuid.UUID, kind, title, body string, payload map[string]interface{}) {
	s.dispatcher.Go("notify_brand", func(taskCtx context.Context) error {
		brand, err := s.brands.GetByID(taskCtx, brandID)
		if err != nil || brand == nil {
			return err
		}
		return s.notifications.Push(taskCtx, brand.UserID, kind, title, body, payload)
	})
}

func (s *applicationService) notifyCreator(creatorID uuid.UUID, kind, title, body string, payload map[string]interface{}) {
	s.dispatcher.Go("notify_creator", func(taskCtx context.Context) error {
		creator, err := s.creators.GetByID(taskCtx, creatorID)
		if err != nil || creator == nil {
			return err
		}
		return s.notifications.Push(taskCtx, creator.UserID, kind, title, body, payload)
	})
}
