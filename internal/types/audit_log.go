package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions recorded for privileged or sensitive operations.
const (
	AuditActionRoleSwitch         = "role_switch"
	AuditActionAdminUpdateProfile = "admin_update_profile"
	AuditActionDisputeResolved    = "dispute_resolved"
	AuditActionSubscriptionChange = "subscription_change"
)

// AuditLog rows are append-only. The gateway never updates or deletes them.
type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorUserID uuid.UUID      `gorm:"type:uuid;index;column:actor_user_id" json:"actor_user_id"`
	ActorEmail  string         `gorm:"column:actor_email" json:"actor_email"`
	Action      string         `gorm:"not null;index;column:action" json:"action"`
	TargetType  string         `gorm:"column:target_type" json:"target_type"`
	TargetID    string         `gorm:"column:target_id" json:"target_id"`
	Details     datatypes.JSON `gorm:"column:details" json:"details"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
