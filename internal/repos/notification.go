package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, rows []*types.Notification) ([]*types.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Notification, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) Create(ctx context.Context, rows []*types.Notification) ([]*types.Notification, error) {
	if len(rows) == 0 {
		return []*types.Notification{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Notification, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notificationRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&types.Notification{}).Where("id = ?", id).Updates(updates).Error
}

func (r *notificationRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error) {
	var out []*types.Notification
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND dismissed = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
