package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type MissionService interface {
	ListMine(ctx context.Context) ([]*types.Mission, error)
	// GenerateOnboarding seeds the starter mission set for a profile that just
	// finished onboarding. Best-effort; runs off the request path.
	GenerateOnboarding(ctx context.Context, profileID uuid.UUID, profileType string) error
}

type missionService struct {
	log      *logger.Logger
	missions repos.MissionRepo
	brands   repos.BrandRepo
	creators repos.CreatorRepo
}

func NewMissionService(baseLog *logger.Logger, missions repos.MissionRepo, brands repos.BrandRepo, creators repos.CreatorRepo) MissionService {
	return &missionService{
		log:      baseLog.With("service", "MissionService"),
		missions: missions,
		brands:   brands,
		creators: creators,
	}
}

func (s *missionService) ListMine(ctx context.Context) ([]*types.Mission, error) {
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
	out, err := s.missions.ListByProfileID(ctx, view.ProfileID())
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (s *missionService) GenerateOnboarding(ctx context.Context, profileID uuid.UUID, profileType string) error {
	existing, err := s.missions.ListByProfileID(ctx, profileID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	now := time.Now().UTC()
	var rows []*types.Mission
	for _, seed := range missionSeeds(profileType) {
		rows = append(rows, &types.Mission{
			ID:          uuid.New(),
			ProfileID:   profileID,
			ProfileType: profileType,
			Title:       seed[0],
			Description: seed[1],
			CreatedAt:   now,
		})
	}
	_, err = s.missions.Create(ctx, rows)
	return err
}

func missionSeeds(profileType string) [][2]string {
	if profileType == types.ProfileTypeBrand {
		return [][2]string{
			{"Publish your first campaign", "Create a campaign brief and activate it so creators can apply."},
			{"Review an application", "Accept or decline an application from a creator."},
			{"Approve a delivery", "Review submitted work and close the loop with feedback."},
		}
	}
	return [][2]string{
		{"Complete your portfolio", "Add a portfolio link and your content categories."},
		{"Apply to a campaign", "Find an active campaign and send your first pitch."},
		{"Submit a delivery", "Upload proof links for an accepted campaign."},
	}
}
