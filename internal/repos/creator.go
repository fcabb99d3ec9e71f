package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type CreatorRepo interface {
	Create(ctx context.Context, rows []*types.Creator) ([]*types.Creator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Creator, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Creator, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*types.Creator, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type creatorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreatorRepo(db *gorm.DB, baseLog *logger.Logger) CreatorRepo {
	return &creatorRepo{db: db, log: baseLog.With("repo", "CreatorRepo")}
}

func (r *creatorRepo) Create(ctx context.Context, rows []*types.Creator) ([]*types.Creator, error) {
	if len(rows) == 0 {
		return []*types.Creator{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *creatorRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Creator, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Creator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *creatorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Creator, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out types.Creator
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *creatorRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*types.Creator, error) {
	if customerID == "" {
		return nil, nil
	}
	var out types.Creator
	err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *creatorRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Creator{}).Where("id = ?", id).Updates(updates).Error
}

func (r *creatorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&types.Creator{}).Error
}
