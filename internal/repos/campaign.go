package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type CampaignRepo interface {
	Create(ctx context.Context, rows []*types.Campaign) ([]*types.Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Campaign, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Campaign, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*types.Campaign, error)
}

type campaignRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignRepo(db *gorm.DB, baseLog *logger.Logger) CampaignRepo {
	return &campaignRepo{db: db, log: baseLog.With("repo", "CampaignRepo")}
}

func (r *campaignRepo) Create(ctx context.Context, rows []*types.Campaign) ([]*types.Campaign, error) {
	if len(rows) == 0 {
		return []*types.Campaign{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *campaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Campaign, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *campaignRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Campaign{}).Where("id = ?", id).Updates(updates).Error
}

func (r *campaignRepo) ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Campaign, error) {
	var out []*types.Campaign
	if brandID == uuid.Nil {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *campaignRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*types.Campaign, error) {
	var out []*types.Campaign
	if status == "" {
		return out, nil
	}
	q := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
