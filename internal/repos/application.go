package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type ApplicationRepo interface {
	Create(ctx context.Context, rows []*types.Application) ([]*types.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Application, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]*types.Application, error)
	ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Application, error)
	GetActive(ctx context.Context, campaignID, creatorID uuid.UUID) (*types.Application, error)
}

type applicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{db: db, log: baseLog.With("repo", "ApplicationRepo")}
}

func (r *applicationRepo) Create(ctx context.Context, rows []*types.Application) ([]*types.Application, error) {
	if len(rows) == 0 {
		return []*types.Application{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *applicationRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Application{}).Where("id = ?", id).Updates(updates).Error
}

func (r *applicationRepo) ListByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]*types.Application, error) {
	var out []*types.Application
	if creatorID == uuid.Nil {
		return out, nil
	}
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applicationRepo) ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Application, error) {
	var out []*types.Application
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

// GetActive returns a pending or accepted application for the pair, if any.
// Used to reject duplicate applications to the same campaign.
func (r *applicationRepo) GetActive(ctx context.Context, campaignID, creatorID uuid.UUID) (*types.Application, error) {
	if campaignID == uuid.Nil || creatorID == uuid.Nil {
		return nil, nil
	}
	var out types.Application
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND creator_id = ? AND status IN ?",
			campaignID, creatorID,
			[]string{types.ApplicationStatusPending, types.ApplicationStatusAccepted}).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
