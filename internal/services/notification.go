package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type NotificationService interface {
	List(ctx context.Context) ([]*types.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) (*types.Notification, error)
	Dismiss(ctx context.Context, notificationID uuid.UUID) (*types.Notification, error)
	// Push writes a notification row for another user. Called from dispatcher
	// tasks; failures stay off the primary response.
	Push(ctx context.Context, userID uuid.UUID, kind, title, body string, payload map[string]interface{}) error
}

type notificationService struct {
	log           *logger.Logger
	notifications repos.NotificationRepo
}

func NewNotificationService(baseLog *logger.Logger, notifications repos.NotificationRepo) NotificationService {
	return &notificationService{
		log:           baseLog.With("service", "NotificationService"),
		notifications: notifications,
	}
}

func (s *notificationService) List(ctx context.Context) ([]*types.Notification, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.notifications.ListByUserID(ctx, id.UserID, 50)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) (*types.Notification, error) {
	return s.setFlag(ctx, notificationID, map[string]interface{}{"read": true})
}

func (s *notificationService) Dismiss(ctx context.Context, notificationID uuid.UUID) (*types.Notification, error) {
	return s.setFlag(ctx, notificationID, map[string]interface{}{"dismissed": true})
}

func (s *notificationService) setFlag(ctx context.Context, notificationID uuid.UUID, updates map[string]interface{}) (*types.Notification, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	row, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if row == nil {
		return nil, apierr.NotFound("notification not found")
	}
	if row.UserID != id.UserID {
		return nil, apierr.Forbidden("notification belongs to another user")
	}
	if err := s.notifications.UpdateFields(ctx, notificationID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	row, err = s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return row, nil
}

func (s *notificationService) Push(ctx context.Context, userID uuid.UUID, kind, title, body string, payload map[string]interface{}) error {
	if userID == uuid.Nil {
		return nil
	}
	row := &types.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if len(payload) > 0 {
		if raw, err := json.Marshal(payload); err == nil {
			row.Payload = datatypes.JSON(raw)
		}
	}
	_, err := s.notifications.Create(ctx, []*types.Notification{row})
	return err
}
