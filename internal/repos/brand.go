package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type BrandRepo interface {
	Create(ctx context.Context, rows []*types.Brand) ([]*types.Brand, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Brand, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Brand, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*types.Brand, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBrandRepo(db *gorm.DB, baseLog *logger.Logger) BrandRepo {
	return &brandRepo{db: db, log: baseLog.With("repo", "BrandRepo")}
}

func (r *brandRepo) Create(ctx context.Context, rows []*types.Brand) ([]*types.Brand, error) {
	if len(rows) == 0 {
		return []*types.Brand{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *brandRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Brand, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Brand
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *brandRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Brand, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out types.Brand
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *brandRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*types.Brand, error) {
	if customerID == "" {
		return nil, nil
	}
	var out types.Brand
	err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *brandRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Brand{}).Where("id = ?", id).Updates(updates).Error
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&types.Brand{}).Error
}
