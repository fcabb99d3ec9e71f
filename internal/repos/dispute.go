package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type DisputeRepo interface {
	Create(ctx context.Context, rows []*types.Dispute) ([]*types.Dispute, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Dispute, error)
	GetOpenByDeliveryID(ctx context.Context, deliveryID uuid.UUID) (*types.Dispute, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type disputeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDisputeRepo(db *gorm.DB, baseLog *logger.Logger) DisputeRepo {
	return &disputeRepo{db: db, log: baseLog.With("repo", "DisputeRepo")}
}

func (r *disputeRepo) Create(ctx context.Context, rows []*types.Dispute) ([]*types.Dispute, error) {
	if len(rows) == 0 {
		return []*types.Dispute{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *disputeRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Dispute, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Dispute
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *disputeRepo) GetOpenByDeliveryID(ctx context.Context, deliveryID uuid.UUID) (*types.Dispute, error) {
	if deliveryID == uuid.Nil {
		return nil, nil
	}
	var out types.Dispute
	err := r.db.WithContext(ctx).
		Where("delivery_id = ? AND status = ?", deliveryID, types.DisputeStatusOpen).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *disputeRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Dispute{}).Where("id = ?", id).Updates(updates).Error
}
