package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusSubmitted = "submitted"
	DeliveryStatusInDispute = "in_dispute"
	DeliveryStatusApproved  = "approved"
	DeliveryStatusRejected  = "rejected"
)

type Delivery struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID    uuid.UUID      `gorm:"type:uuid;index;not null;column:campaign_id" json:"campaign_id"`
	BrandID       uuid.UUID      `gorm:"type:uuid;index;not null;column:brand_id" json:"brand_id"`
	CreatorID     uuid.UUID      `gorm:"type:uuid;index;not null;column:creator_id" json:"creator_id"`
	Status        string         `gorm:"not null;default:pending;column:status" json:"status"`
	ProofURLs     datatypes.JSON `gorm:"column:proof_urls" json:"proof_urls"`
	Note          string         `gorm:"column:note" json:"note"`
	ContestReason string         `gorm:"column:contest_reason" json:"contest_reason"`
	Feedback      string         `gorm:"column:feedback" json:"feedback"`
	OnTime        bool           `gorm:"column:on_time" json:"on_time"`
	Deadline      *time.Time     `gorm:"column:deadline" json:"deadline,omitempty"`
	SubmittedAt   *time.Time     `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ContestedAt   *time.Time     `gorm:"column:contested_at" json:"contested_at,omitempty"`
	ReviewedAt    *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}
