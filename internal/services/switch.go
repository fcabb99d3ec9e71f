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
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

// ProfileSwitcher moves a user between profile variants. The store cannot
// delete and create in one transaction, so the switch runs as a compensated
// sequence: delete the old row (compensation recreates it verbatim), then
// create the replacement carrying over the subscription and onboarding fields.
// Shared by the admin role operation and the self-service switch.
type ProfileSwitcher struct {
	log      *logger.Logger
	brands   repos.BrandRepo
	creators repos.CreatorRepo
	saga     *saga.Executor
	audit    *audit.Recorder
}

func NewProfileSwitcher(baseLog *logger.Logger, brands repos.BrandRepo, creators repos.CreatorRepo, sagaExec *saga.Executor, auditRec *audit.Recorder) *ProfileSwitcher {
	return &ProfileSwitcher{
		log:      baseLog.With("component", "ProfileSwitcher"),
		brands:   brands,
		creators: creators,
		saga:     sagaExec,
		audit:    auditRec,
	}
}

func (s *ProfileSwitcher) Switch(ctx context.Context, userID uuid.UUID, toType string) (*ProfileView, error) {
	if toType != types.ProfileTypeBrand && toType != types.ProfileTypeCreator {
		return nil, apierr.InvalidInput(fmt.Sprintf("unknown profile type %q", toType))
	}
	current, err := resolveProfile(ctx, s.brands, s.creators, userID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Type == toType {
		return current, nil
	}

	now := time.Now().UTC()
	if current == nil {
		// Nothing to delete; a single create needs no compensation pair.
		view, err := s.createVariant(ctx, userID, toType, now, nil)
		if err != nil {
			return nil, apierr.From(err)
		}
		s.recordSwitch(ctx, view, "", toType)
		return view, nil
	}

	var created *ProfileView
	steps := []saga.Step{
		s.deleteStep(current),
		{
			Name: "create_new_profile",
			Run: func(ctx context.Context) error {
				view, err := s.createVariant(ctx, userID, toType, now, current)
				if err != nil {
					return err
				}
				created = view
				return nil
			},
		},
	}
	if err := s.saga.Execute(ctx, "profile_switch", steps); err != nil {
		return nil, sagaError(err)
	}
	s.recordSwitch(ctx, created, current.Type, toType)
	return created, nil
}

func (s *ProfileSwitcher) deleteStep(current *ProfileView) saga.Step {
	if current.Type == types.ProfileTypeBrand {
		old := *current.Brand
		return saga.Step{
			Name: "delete_old_profile",
			Run: func(ctx context.Context) error {
				return s.brands.Delete(ctx, old.ID)
			},
			Compensate: func(ctx context.Context) error {
				restored := old
				_, err := s.brands.Create(ctx, []*types.Brand{&restored})
				return err
			},
		}
	}
	old := *current.Creator
	return saga.Step{
		Name: "delete_old_profile",
		Run: func(ctx context.Context) error {
			return s.creators.Delete(ctx, old.ID)
		},
		Compensate: func(ctx context.Context) error {
			restored := old
			_, err := s.creators.Create(ctx, []*types.Creator{&restored})
			return err
		},
	}
}

func (s *ProfileSwitcher) createVariant(ctx context.Context, userID uuid.UUID, toType string, now time.Time, carryFrom *ProfileView) (*ProfileView, error) {
	accountState := types.AccountStateIncomplete
	onboardingStep := types.OnboardingStepFirst
	var subStatus, planLevel, customerID, avatar string
	if carryFrom != nil {
		accountState = carryFrom.AccountState()
		onboardingStep = carryFrom.OnboardingStep()
		customerID = carryFrom.StripeCustomerID()
		if carryFrom.Brand != nil {
			subStatus = carryFrom.Brand.SubscriptionStatus
			planLevel = carryFrom.Brand.PlanLevel
			avatar = carryFrom.Brand.AvatarDataURL
		} else if carryFrom.Creator != nil {
			subStatus = carryFrom.Creator.SubscriptionStatus
			planLevel = carryFrom.Creator.PlanLevel
			avatar = carryFrom.Creator.AvatarDataURL
		}
	}
	if toType == types.ProfileTypeBrand {
		row := &types.Brand{
			ID:                 uuid.New(),
			UserID:             userID,
			AvatarDataURL:      avatar,
			AccountState:       accountState,
			OnboardingStep:     onboardingStep,
			SubscriptionStatus: subStatus,
			PlanLevel:          planLevel,
			StripeCustomerID:   customerID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if _, err := s.brands.Create(ctx, []*types.Brand{row}); err != nil {
			return nil, err
		}
		return &ProfileView{Type: types.ProfileTypeBrand, Brand: row}, nil
	}
	row := &types.Creator{
		ID:                 uuid.New(),
		UserID:             userID,
		AvatarDataURL:      avatar,
		AccountState:       accountState,
		OnboardingStep:     onboardingStep,
		SubscriptionStatus: subStatus,
		PlanLevel:          planLevel,
		StripeCustomerID:   customerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := s.creators.Create(ctx, []*types.Creator{row}); err != nil {
		return nil, err
	}
	return &ProfileView{Type: types.ProfileTypeCreator, Creator: row}, nil
}

// recordSwitch writes the single role_switch audit entry for a completed
// switch.
func (s *ProfileSwitcher) recordSwitch(ctx context.Context, view *ProfileView, fromType, toType string) {
	s.audit.Record(ctx, audit.Entry{
		Action:     types.AuditActionRoleSwitch,
		TargetType: "profile",
		TargetID:   view.ProfileID().String(),
		Details: map[string]interface{}{
			"from": fromType,
			"to":   toType,
		},
	})
}
