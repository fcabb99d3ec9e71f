package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationKindApplicationReceived = "application_received"
	NotificationKindApplicationDecided  = "application_decided"
	NotificationKindDeliveryReviewed    = "delivery_reviewed"
	NotificationKindDeliveryContested   = "delivery_contested"
	NotificationKindDisputeResolved     = "dispute_resolved"
)

type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Kind      string         `gorm:"not null;column:kind" json:"kind"`
	Title     string         `gorm:"column:title" json:"title"`
	Body      string         `gorm:"column:body" json:"body"`
	Read      bool           `gorm:"not null;default:false;column:read" json:"read"`
	Dismissed bool           `gorm:"not null;default:false;column:dismissed" json:"dismissed"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
