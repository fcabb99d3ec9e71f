package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusWithdrawn = "withdrawn"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAccepted  = "accepted"
)

type Application struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID   uuid.UUID `gorm:"type:uuid;index;not null;column:campaign_id" json:"campaign_id"`
	BrandID      uuid.UUID `gorm:"type:uuid;index;not null;column:brand_id" json:"brand_id"`
	CreatorID    uuid.UUID `gorm:"type:uuid;index;not null;column:creator_id" json:"creator_id"`
	Pitch        string    `gorm:"column:pitch" json:"pitch"`
	ProposedRate float64   `gorm:"column:proposed_rate" json:"proposed_rate"`
	Status       string    `gorm:"not null;default:pending;column:status" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
