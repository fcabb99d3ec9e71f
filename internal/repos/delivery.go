package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type DeliveryRepo interface {
	Create(ctx context.Context, rows []*types.Delivery) ([]*types.Delivery, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Delivery, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]*types.Delivery, error)
	ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Delivery, error)
}

type deliveryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliveryRepo(db *gorm.DB, baseLog *logger.Logger) DeliveryRepo {
	return &deliveryRepo{db: db, log: baseLog.With("repo", "DeliveryRepo")}
}

func (r *deliveryRepo) Create(ctx context.Context, rows []*types.Delivery) ([]*types.Delivery, error) {
	if len(rows) == 0 {
		return []*types.Delivery{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *deliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Delivery, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Delivery
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *deliveryRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Delivery{}).Where("id = ?", id).Updates(updates).Error
}

func (r *deliveryRepo) ListByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]*types.Delivery, error) {
	var out []*types.Delivery
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

func (r *deliveryRepo) ListByBrandID(ctx context.Context, brandID uuid.UUID) ([]*types.Delivery, error) {
	var out []*types.Delivery
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
