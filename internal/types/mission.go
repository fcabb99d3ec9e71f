package types

import (
	"time"

	"github.com/google/uuid"
)

// Mission rows are generated as a best-effort secondary effect when a profile
// finishes onboarding.
type Mission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null;column:profile_id" json:"profile_id"`
	ProfileType string    `gorm:"not null;column:profile_type" json:"profile_type"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Completed   bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Mission) TableName() string {
	return "missions"
}
