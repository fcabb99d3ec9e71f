package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/avatar"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/clients/analytics"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/sanitize"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type ProfileService interface {
	Select(ctx context.Context, profileType string) (*ProfileView, bool, error)
	Me(ctx context.Context) (*ProfileView, error)
	Update(ctx context.Context, input map[string]interface{}) (*ProfileView, error)
	AdvanceOnboarding(ctx context.Context, step int, fields map[string]interface{}) (*ProfileView, error)
	Finalize(ctx context.Context) (*ProfileView, error)
	Switch(ctx context.Context, toType string) (*ProfileView, error)
}

type profileService struct {
	log        *logger.Logger
	users      repos.UserRepo
	brands     repos.BrandRepo
	creators   repos.CreatorRepo
	switcher   *ProfileSwitcher
	missions   MissionService
	dispatcher *tasks.Dispatcher
	avatars    *avatar.Generator
	analytics  *analytics.Client
}

func NewProfileService(
	baseLog *logger.Logger,
	users repos.UserRepo,
	brands repos.BrandRepo,
	creators repos.CreatorRepo,
	switcher *ProfileSwitcher,
	missions MissionService,
	dispatcher *tasks.Dispatcher,
	avatars *avatar.Generator,
	analyticsClient *analytics.Client,
) ProfileService {
	return &profileService{
		log:        baseLog.With("service", "ProfileService"),
		users:      users,
		brands:     brands,
		creators:   creators,
		switcher:   switcher,
		missions:   missions,
		dispatcher: dispatcher,
		avatars:    avatars,
		analytics:  analyticsClient,
	}
}

// Select creates the caller's profile variant. Idempotent: an existing profile
// of either variant short-circuits with zero writes.
func (s *profileService) Select(ctx context.Context, profileType string) (*ProfileView, bool, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, false, err
	}
	if profileType != types.ProfileTypeBrand && profileType != types.ProfileTypeCreator {
		return nil, false, apierr.InvalidInput(fmt.Sprintf("unknown profile type %q", profileType))
	}
	if err := s.ensureUser(ctx, id); err != nil {
		return nil, false, err
	}
	existing, err := resolveProfile(ctx, s.brands, s.creators, id.UserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	now := time.Now().UTC()
	var view *ProfileView
	if profileType == types.ProfileTypeBrand {
		row := &types.Brand{
			ID:             uuid.New(),
			UserID:         id.UserID,
			AccountState:   types.AccountStateIncomplete,
			OnboardingStep: types.OnboardingStepFirst,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := s.brands.Create(ctx, []*types.Brand{row}); err != nil {
			return nil, false, apierr.Internal(err)
		}
		view = &ProfileView{Type: types.ProfileTypeBrand, Brand: row}
	} else {
		row := &types.Creator{
			ID:             uuid.New(),
			UserID:         id.UserID,
			AccountState:   types.AccountStateIncomplete,
			OnboardingStep: types.OnboardingStepFirst,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := s.creators.Create(ctx, []*types.Creator{row}); err != nil {
			return nil, false, apierr.Internal(err)
		}
		view = &ProfileView{Type: types.ProfileTypeCreator, Creator: row}
	}

	s.spawnAvatar(view.Type, view.ProfileID(), id.Email)
	s.spawnAnalytics("profile_created", id.UserID, map[string]interface{}{"profile_type": view.Type})
	return view, false, nil
}

func (s *profileService) Me(ctx context.Context) (*ProfileView, error) {
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
	return view, nil
}

func (s *profileService) Update(ctx context.Context, input map[string]interface{}) (*ProfileView, error) {
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
	updates := sanitize.Apply(sanitize.PublicSchemaFor(view.Type), input)
	if len(updates) == 0 {
		return nil, apierr.NoChanges()
	}
	if view.Type == types.ProfileTypeCreator {
		if err := sanitize.RateRange(updates, view.Creator.MinRate, view.Creator.MaxRate); err != nil {
			return nil, apierr.InvalidRateRange(err.Error())
		}
	}
	encodeStringArrays(updates, "categories")
	if err := s.writeProfile(ctx, view, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	return s.reload(ctx, id.UserID)
}

func (s *profileService) AdvanceOnboarding(ctx context.Context, step int, fields map[string]interface{}) (*ProfileView, error) {
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
	if step < types.OnboardingStepFirst || step > types.OnboardingStepFinal {
		return nil, apierr.InvalidStep(fmt.Sprintf("step must be between %d and %d", types.OnboardingStepFirst, types.OnboardingStepFinal))
	}
	if step < view.OnboardingStep() {
		return nil, apierr.InvalidStep(fmt.Sprintf("cannot move back from step %d to %d", view.OnboardingStep(), step))
	}

	// Only the content steps carry profile fields; the first and final steps
	// just move the cursor.
	updates := map[string]interface{}{}
	if step >= 2 && step <= 4 {
		updates = sanitize.Apply(sanitize.PublicSchemaFor(view.Type), fields)
		if view.Type == types.ProfileTypeCreator && len(updates) > 0 {
			if err := sanitize.RateRange(updates, view.Creator.MinRate, view.Creator.MaxRate); err != nil {
				return nil, apierr.InvalidRateRange(err.Error())
			}
		}
		encodeStringArrays(updates, "categories")
	}
	updates["onboarding_step"] = step
	if step >= 2 && view.AccountState() == types.AccountStateIncomplete {
		updates["account_state"] = types.AccountStateExploring
	}
	if err := s.writeProfile(ctx, view, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	return s.reload(ctx, id.UserID)
}

// Finalize marks onboarding done. Already-ready profiles are a no-op success,
// not an error.
func (s *profileService) Finalize(ctx context.Context) (*ProfileView, error) {
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
	if view.AccountState() == types.AccountStateReady {
		return view, nil
	}
	updates := map[string]interface{}{
		"account_state":   types.AccountStateReady,
		"onboarding_step": types.OnboardingStepFinal,
	}
	if err := s.writeProfile(ctx, view, updates); err != nil {
		return nil, apierr.Internal(err)
	}

	profileID := view.ProfileID()
	profileType := view.Type
	s.dispatcher.Go("onboarding_missions", func(taskCtx context.Context) error {
		return s.missions.GenerateOnboarding(taskCtx, profileID, profileType)
	})
	s.spawnAnalytics("onboarding_completed", id.UserID, map[string]interface{}{"profile_type": profileType})
	return s.reload(ctx, id.UserID)
}

func (s *profileService) Switch(ctx context.Context, toType string) (*ProfileView, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.switcher.Switch(ctx, id.UserID, toType)
}

func (s *profileService) writeProfile(ctx context.Context, view *ProfileView, updates map[string]interface{}) error {
	if view.Type == types.ProfileTypeBrand {
		return s.brands.UpdateFields(ctx, view.Brand.ID, updates)
	}
	return s.creators.UpdateFields(ctx, view.Creator.ID, updates)
}

func (s *profileService) reload(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	view, err := resolveProfile(ctx, s.brands, s.creators, userID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apierr.NotFound("no profile for user")
	}
	return view, nil
}

// ensureUser upserts the user row from the verified token claims. Identity
// lives in the external auth provider; the local row only anchors ownership.
// The verified role must be carried over: the auth middleware prefers the
// local row once it exists, so seeding "user" here would demote an admin.
func (s *profileService) ensureUser(ctx context.Context, id *ctxutil.Identity) error {
	existing, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		return apierr.Internal(err)
	}
	if existing != nil {
		return nil
	}
	role := types.UserRoleUser
	if id.Role == types.UserRoleAdmin {
		role = types.UserRoleAdmin
	}
	now := time.Now().UTC()
	_, err = s.users.Create(ctx, []*types.User{{
		ID:        id.UserID,
		Email:     id.Email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}})
	if err != nil {
		return apierr.Internal(err)
	}
	return nil
}

func (s *profileService) spawnAvatar(profileType string, profileID uuid.UUID, seed string) {
	if s.avatars == nil {
		return
	}
	s.dispatcher.Go("avatar_render", func(taskCtx context.Context) error {
		dataURL, err := s.avatars.DataURL(seed)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{"avatar_data_url": dataURL}
		if profileType == types.ProfileTypeBrand {
			return s.brands.UpdateFields(taskCtx, profileID, updates)
		}
		return s.creators.UpdateFields(taskCtx, profileID, updates)
	})
}

func (s *profileService) spawnAnalytics(eventType string, userID uuid.UUID, props map[string]interface{}) {
	if s.analytics == nil {
		return
	}
	s.dispatcher.Go("analytics_"+eventType, func(taskCtx context.Context) error {
		return s.analytics.Publish(taskCtx, analytics.Event{Type: eventType, UserID: userID, Props: props})
	})
}
