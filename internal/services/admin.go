package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/audit"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/sanitize"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/transition"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

// ResolveResult carries both records written by a resolved dispute.
type ResolveResult struct {
	Dispute  *types.Dispute  `json:"dispute"`
	Delivery *types.Delivery `json:"delivery"`
}

type AdminService interface {
	ChangeUserRole(ctx context.Context, targetUserID uuid.UUID, newRole string) (*ProfileView, error)
	UpdateProfile(ctx context.Context, profileID uuid.UUID, input map[string]interface{}) (*ProfileView, error)
	ResolveDispute(ctx context.Context, disputeID uuid.UUID, verdict, resolution string) (*ResolveResult, error)
	ListAudit(ctx context.Context, limit int) ([]*types.AuditLog, error)
}

type adminService struct {
	log           *logger.Logger
	users         repos.UserRepo
	brands        repos.BrandRepo
	creators      repos.CreatorRepo
	disputes      repos.DisputeRepo
	deliveries    repos.DeliveryRepo
	auditLogs     repos.AuditLogRepo
	switcher      *ProfileSwitcher
	saga          *saga.Executor
	audit         *audit.Recorder
	notifications NotificationService
	dispatcher    *tasks.Dispatcher
}

func NewAdminService(
	baseLog *logger.Logger,
	users repos.UserRepo,
	brands repos.BrandRepo,
	creators repos.CreatorRepo,
	disputes repos.DisputeRepo,
	deliveries repos.DeliveryRepo,
	auditLogs repos.AuditLogRepo,
	switcher *ProfileSwitcher,
	sagaExec *saga.Executor,
	auditRec *audit.Recorder,
	notifications NotificationService,
	dispatcher *tasks.Dispatcher,
) AdminService {
	return &adminService{
		log:           baseLog.With("service", "AdminService"),
		users:         users,
		brands:        brands,
		creators:      creators,
		disputes:      disputes,
		deliveries:    deliveries,
		auditLogs:     auditLogs,
		switcher:      switcher,
		saga:          sagaExec,
		audit:         auditRec,
		notifications: notifications,
		dispatcher:    dispatcher,
	}
}

// ChangeUserRole handles both plain role edits (admin/user update the User
// row) and profile variant switches (brand/creator run the compensated
// delete-then-create sequence).
func (s *adminService) ChangeUserRole(ctx context.Context, targetUserID uuid.UUID, newRole string) (*ProfileView, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}

	switch newRole {
	case types.UserRoleAdmin, types.UserRoleUser:
		if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"role": newRole}); err != nil {
			return nil, apierr.Internal(err)
		}
		s.audit.Record(ctx, audit.Entry{
			Action:     types.AuditActionRoleSwitch,
			TargetType: "user",
			TargetID:   user.ID.String(),
			Details:    map[string]interface{}{"from": user.Role, "to": newRole},
		})
		return resolveProfile(ctx, s.brands, s.creators, user.ID)

	case types.ProfileTypeBrand, types.ProfileTypeCreator:
		return s.switcher.Switch(ctx, user.ID, newRole)

	default:
		return nil, apierr.InvalidInput(fmt.Sprintf("unknown role %q", newRole))
	}
}

func (s *adminService) UpdateProfile(ctx context.Context, profileID uuid.UUID, input map[string]interface{}) (*ProfileView, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	view, err := s.findProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	updates := sanitize.Apply(sanitize.PrivilegedSchemaFor(view.Type), input)
	if len(updates) == 0 {
		return nil, apierr.NoChanges()
	}
	if state, ok := updates["account_state"].(string); ok {
		if !transition.AccountStateAllowed(view.AccountState(), state) {
			return nil, apierr.InvalidTransition(view.AccountState(), state)
		}
	}
	if rawStep, ok := updates["onboarding_step"].(float64); ok {
		step := int(rawStep)
		if step < types.OnboardingStepFirst || step > types.OnboardingStepFinal {
			return nil, apierr.InvalidStep(fmt.Sprintf("step must be between %d and %d", types.OnboardingStepFirst, types.OnboardingStepFinal))
		}
		updates["onboarding_step"] = step
	}
	if view.Type == types.ProfileTypeCreator {
		if err := sanitize.RateRange(updates, view.Creator.MinRate, view.Creator.MaxRate); err != nil {
			return nil, apierr.InvalidRateRange(err.Error())
		}
	}
	encodeStringArrays(updates, "categories")

	if view.Type == types.ProfileTypeBrand {
		err = s.brands.UpdateFields(ctx, view.Brand.ID, updates)
	} else {
		err = s.creators.UpdateFields(ctx, view.Creator.ID, updates)
	}
	if err != nil {
		return nil, apierr.Internal(err)
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     types.AuditActionAdminUpdateProfile,
		TargetType: "profile",
		TargetID:   profileID.String(),
		Details:    map[string]interface{}{"fields": fieldNames(updates)},
	})
	return s.findProfileByID(ctx, profileID)
}

// ResolveDispute closes the dispute and settles the delivery in one
// compensated sequence. A failed delivery write reopens the dispute.
func (s *adminService) ResolveDispute(ctx context.Context, disputeID uuid.UUID, verdict, resolution string) (*ResolveResult, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	target, ok := verdictStatus(verdict)
	if !ok {
		return nil, apierr.InvalidAction(verdict)
	}
	dispute, err := s.disputes.GetByID(ctx, disputeID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if dispute == nil {
		return nil, apierr.NotFound("dispute not found")
	}
	if !transition.Allowed(transition.EntityDispute, dispute.Status, types.DisputeStatusResolved) {
		return nil, apierr.InvalidTransition(dispute.Status, types.DisputeStatusResolved)
	}
	delivery, err := s.deliveries.GetByID(ctx, dispute.DeliveryID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if delivery == nil {
		return nil, apierr.NotFound("delivery not found")
	}
	if !transition.Allowed(transition.EntityDelivery, delivery.Status, target) {
		return nil, apierr.InvalidTransition(delivery.Status, target)
	}

	now := time.Now().UTC()
	priorDispute := *dispute
	steps := []saga.Step{
		{
			Name: "resolve_dispute",
			Run: func(ctx context.Context) error {
				return s.disputes.UpdateFields(ctx, dispute.ID, map[string]interface{}{
					"status":      types.DisputeStatusResolved,
					"resolution":  resolution,
					"resolved_at": now,
				})
			},
			Compensate: func(ctx context.Context) error {
				return s.disputes.UpdateFields(ctx, dispute.ID, map[string]interface{}{
					"status":      priorDispute.Status,
					"resolution":  priorDispute.Resolution,
					"resolved_at": priorDispute.ResolvedAt,
				})
			},
		},
		{
			Name: "settle_delivery",
			Run: func(ctx context.Context) error {
				return s.deliveries.UpdateFields(ctx, delivery.ID, map[string]interface{}{
					"status":      target,
					"reviewed_at": now,
				})
			},
		},
	}
	if err := s.saga.Execute(ctx, "dispute_resolve", steps); err != nil {
		return nil, sagaError(err)
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     types.AuditActionDisputeResolved,
		TargetType: "dispute",
		TargetID:   dispute.ID.String(),
		Details:    map[string]interface{}{"verdict": verdict, "delivery_id": delivery.ID},
	})
	s.notifyParties(delivery, verdict)

	updatedDispute, err := s.disputes.GetByID(ctx, dispute.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	updatedDelivery, err := s.deliveries.GetByID(ctx, delivery.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return &ResolveResult{Dispute: updatedDispute, Delivery: updatedDelivery}, nil
}

func (s *adminService) ListAudit(ctx context.Context, limit int) ([]*types.AuditLog, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	out, err := s.auditLogs.ListRecent(ctx, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

// findProfileByID locates a profile by primary key across both variant
// tables.
func (s *adminService) findProfileByID(ctx context.Context, profileID uuid.UUID) (*ProfileView, error) {
	brand, err := s.brands.GetByID(ctx, profileID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand != nil {
		return &ProfileView{Type: types.ProfileTypeBrand, Brand: brand}, nil
	}
	creator, err := s.creators.GetByID(ctx, profileID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if creator != nil {
		return &ProfileView{Type: types.ProfileTypeCreator, Creator: creator}, nil
	}
	return nil, apierr.NotFound("profile not found")
}

func (s *adminService) notifyParties(delivery *types.Delivery, verdict string) {
	deliveryID := delivery.ID
	brandID := delivery.BrandID
	creatorID := delivery.CreatorID
	s.dispatcher.Go("notify_dispute_parties", func(taskCtx context.Context) error {
		payload := map[string]interface{}{"delivery_id": deliveryID, "verdict": verdict}
		if brand, err := s.brands.GetByID(taskCtx, brandID); err == nil && brand != nil {
			_ = s.notifications.Push(taskCtx, brand.UserID, types.NotificationKindDisputeResolved,
				"Dispute resolved", "The dispute on your campaign delivery was resolved.", payload)
		}
		if creator, err := s.creators.GetByID(taskCtx, creatorID); err == nil && creator != nil {
			_ = s.notifications.Push(taskCtx, creator.UserID, types.NotificationKindDisputeResolved,
				"Dispute resolved", "The dispute on your delivery was resolved.", payload)
		}
		return nil
	})
}

func fieldNames(updates map[string]interface{}) []string {
	out := make([]string, 0, len(updates))
	for k := range updates {
		out = append(out, k)
	}
	return out
}
