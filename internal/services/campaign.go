package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/sanitize"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/transition"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type CampaignService interface {
	Create(ctx context.Context, input map[string]interface{}) (*types.Campaign, error)
	Update(ctx context.Context, campaignID uuid.UUID, input map[string]interface{}) (*types.Campaign, error)
	ChangeStatus(ctx context.Context, campaignID uuid.UUID, status string) (*types.Campaign, error)
	List(ctx context.Context) ([]*types.Campaign, error)
}

type campaignService struct {
	log       *logger.Logger
	campaigns repos.CampaignRepo
	brands    repos.BrandRepo
	creators  repos.CreatorRepo
}

func NewCampaignService(baseLog *logger.Logger, campaigns repos.CampaignRepo, brands repos.BrandRepo, creators repos.CreatorRepo) CampaignService {
	return &campaignService{
		log:       baseLog.With("service", "CampaignService"),
		campaigns: campaigns,
		brands:    brands,
		creators:  creators,
	}
}

func (s *campaignService) Create(ctx context.Context, input map[string]interface{}) (*types.Campaign, error) {
	brand, err := s.requireBrand(ctx)
	if err != nil {
		return nil, err
	}
	updates := sanitize.Apply(sanitize.CampaignPublic, input)
	title, _ := updates["title"].(string)
	brief, _ := updates["brief"].(string)
	if strings.TrimSpace(title) == "" || strings.TrimSpace(brief) == "" {
		return nil, apierr.MissingFields("title and brief are required")
	}
	deadline, err := parseDeadline(updates)
	if err != nil {
		return nil, err
	}
	budget, _ := updates["budget"].(float64)
	if budget < 0 {
		return nil, apierr.InvalidInput("budget must be non-negative")
	}

	now := time.Now().UTC()
	row := &types.Campaign{
		ID:        uuid.New(),
		BrandID:   brand.ID,
		Title:     title,
		Brief:     brief,
		Budget:    budget,
		Deadline:  deadline,
		Status:    types.CampaignStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.campaigns.Create(ctx, []*types.Campaign{row}); err != nil {
		return nil, apierr.Internal(err)
	}
	return row, nil
}

func (s *campaignService) Update(ctx context.Context, campaignID uuid.UUID, input map[string]interface{}) (*types.Campaign, error) {
	campaign, _, err := s.requireOwnedCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	updates := sanitize.Apply(sanitize.CampaignPublic, input)
	if len(updates) == 0 {
		return nil, apierr.NoChanges()
	}
	if deadline, err := parseDeadline(updates); err != nil {
		return nil, err
	} else if deadline != nil {
		updates["deadline"] = deadline
	}
	if budget, ok := updates["budget"].(float64); ok && budget < 0 {
		return nil, apierr.InvalidInput("budget must be non-negative")
	}
	if err := s.campaigns.UpdateFields(ctx, campaign.ID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	out, err := s.campaigns.GetByID(ctx, campaign.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (s *campaignService) ChangeStatus(ctx context.Context, campaignID uuid.UUID, status string) (*types.Campaign, error) {
	campaign, _, err := s.requireOwnedCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !transition.Allowed(transition.EntityCampaign, campaign.Status, status) {
		return nil, apierr.InvalidTransition(campaign.Status, status)
	}
	if err := s.campaigns.UpdateFields(ctx, campaign.ID, map[string]interface{}{"status": status}); err != nil {
		return nil, apierr.Internal(err)
	}
	out, err := s.campaigns.GetByID(ctx, campaign.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

// List returns the brand's own campaigns, or the active catalogue for
// creators.
func (s *campaignService) List(ctx context.Context) ([]*types.Campaign, error) {
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
	var out []*types.Campaign
	if view.Type == types.ProfileTypeBrand {
		out, err = s.campaigns.ListByBrandID(ctx, view.Brand.ID)
	} else {
		out, err = s.campaigns.ListByStatus(ctx, types.CampaignStatusActive, 100)
	}
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (s *campaignService) requireBrand(ctx context.Context) (*types.Brand, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	brand, err := s.brands.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand == nil {
		return nil, apierr.Forbidden("brand profile required")
	}
	return brand, nil
}

func (s *campaignService) requireOwnedCampaign(ctx context.Context, campaignID uuid.UUID) (*types.Campaign, *types.Brand, error) {
	brand, err := s.requireBrand(ctx)
	if err != nil {
		return nil, nil, err
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, nil, apierr.Internal(err)
	}
	if campaign == nil {
		return nil, nil, apierr.NotFound("campaign not found")
	}
	if campaign.BrandID != brand.ID {
		return nil, nil, apierr.Forbidden("campaign belongs to another brand")
	}
	return campaign, brand, nil
}

// parseDeadline pulls the sanitized deadline string out of updates and parses
// it as RFC3339. The map entry is removed; callers persist the returned time.
func parseDeadline(updates map[string]interface{}) (*time.Time, error) {
	raw, ok := updates["deadline"].(string)
	if !ok {
		return nil, nil
	}
	delete(updates, "deadline")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apierr.InvalidInput("deadline must be RFC3339")
	}
	utc := t.UTC()
	return &utc, nil
}
