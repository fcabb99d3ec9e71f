package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	DisputeStatusOpen     = "open"
	DisputeStatusResolved = "resolved"
)

const (
	DisputePartyBrand   = "brand"
	DisputePartyCreator = "creator"
)

type Dispute struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DeliveryID       uuid.UUID  `gorm:"type:uuid;index;not null;column:delivery_id" json:"delivery_id"`
	CampaignID       uuid.UUID  `gorm:"type:uuid;index;not null;column:campaign_id" json:"campaign_id"`
	RaisedBy         string     `gorm:"not null;column:raised_by" json:"raised_by"`
	Reason           string     `gorm:"column:reason" json:"reason"`
	BrandStatement   string     `gorm:"column:brand_statement" json:"brand_statement"`
	CreatorStatement string     `gorm:"column:creator_statement" json:"creator_statement"`
	Status           string     `gorm:"not null;default:open;column:status" json:"status"`
	Resolution       string     `gorm:"column:resolution" json:"resolution"`
	ResolvedAt       *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

func (Dispute) TableName() string {
	return "disputes"
}
