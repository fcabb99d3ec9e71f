package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile variants. A user holds at most one of Brand or Creator at a time;
// switching variant is delete-then-create with subscription fields carried over.
const (
	ProfileTypeBrand   = "brand"
	ProfileTypeCreator = "creator"
)

// Account states only ever advance: incomplete -> exploring -> ready.
const (
	AccountStateIncomplete = "incomplete"
	AccountStateExploring  = "exploring"
	AccountStateReady      = "ready"
)

const (
	OnboardingStepFirst = 1
	OnboardingStepFinal = 5
)

type Brand struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	CompanyName        string    `gorm:"column:company_name" json:"company_name"`
	Website            string    `gorm:"column:website" json:"website"`
	Industry           string    `gorm:"column:industry" json:"industry"`
	Description        string    `gorm:"column:description" json:"description"`
	AvatarDataURL      string    `gorm:"column:avatar_data_url" json:"avatar_data_url"`
	AccountState       string    `gorm:"not null;default:incomplete;column:account_state" json:"account_state"`
	OnboardingStep     int       `gorm:"not null;default:1;column:onboarding_step" json:"onboarding_step"`
	SubscriptionStatus string    `gorm:"column:subscription_status" json:"subscription_status"`
	PlanLevel          string    `gorm:"column:plan_level" json:"plan_level"`
	StripeCustomerID   string    `gorm:"column:stripe_customer_id" json:"stripe_customer_id"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

type Creator struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null;column:user_id" json:"user_id"`
	DisplayName        string         `gorm:"column:display_name" json:"display_name"`
	Bio                string         `gorm:"column:bio" json:"bio"`
	Categories         datatypes.JSON `gorm:"column:categories" json:"categories"`
	PortfolioURL       string         `gorm:"column:portfolio_url" json:"portfolio_url"`
	MinRate            float64        `gorm:"column:min_rate" json:"min_rate"`
	MaxRate            float64        `gorm:"column:max_rate" json:"max_rate"`
	AvatarDataURL      string         `gorm:"column:avatar_data_url" json:"avatar_data_url"`
	AccountState       string         `gorm:"not null;default:incomplete;column:account_state" json:"account_state"`
	OnboardingStep     int            `gorm:"not null;default:1;column:onboarding_step" json:"onboarding_step"`
	SubscriptionStatus string         `gorm:"column:subscription_status" json:"subscription_status"`
	PlanLevel          string         `gorm:"column:plan_level" json:"plan_level"`
	StripeCustomerID   string         `gorm:"column:stripe_customer_id" json:"stripe_customer_id"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
}

func (Creator) TableName() string {
	return "creators"
}
