package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusArchived  = "archived"
)

type Campaign struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID   uuid.UUID  `gorm:"type:uuid;index;not null;column:brand_id" json:"brand_id"`
	Title     string     `gorm:"not null;column:title" json:"title"`
	Brief     string     `gorm:"column:brief" json:"brief"`
	Budget    float64    `gorm:"column:budget" json:"budget"`
	Deadline  *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	Status    string     `gorm:"not null;default:draft;column:status" json:"status"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
