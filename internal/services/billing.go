package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/audit"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/clients/payments"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/sanitize"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type BillingService interface {
	Checkout(ctx context.Context, plan string) (string, error)
	Portal(ctx context.Context) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	log      *logger.Logger
	brands   repos.BrandRepo
	creators repos.CreatorRepo
	payments payments.Client
	audit    *audit.Recorder
}

func NewBillingService(baseLog *logger.Logger, brands repos.BrandRepo, creators repos.CreatorRepo, paymentsClient payments.Client, auditRec *audit.Recorder) BillingService {
	return &billingService{
		log:      baseLog.With("service", "BillingService"),
		brands:   brands,
		creators: creators,
		payments: paymentsClient,
		audit:    auditRec,
	}
}

func (s *billingService) Checkout(ctx context.Context, plan string) (string, error) {
	if strings.TrimSpace(plan) == "" {
		return "", apierr.MissingFields("plan is required")
	}
	id, err := callerIdentity(ctx)
	if err != nil {
		return "", err
	}
	view, err := resolveProfile(ctx, s.brands, s.creators, id.UserID)
	if err != nil {
		return "", err
	}
	if view == nil {
		return "", apierr.NotFound("no profile for user")
	}
	customerID, err := s.ensureCustomer(ctx, view, id.Email)
	if err != nil {
		return "", err
	}
	url, err := s.payments.CreateCheckoutSession(ctx, customerID, plan)
	if err != nil {
		return "", apierr.Internal(err)
	}
	return url, nil
}

func (s *billingService) Portal(ctx context.Context) (string, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return "", err
	}
	view, err := resolveProfile(ctx, s.brands, s.creators, id.UserID)
	if err != nil {
		return "", err
	}
	if view == nil {
		return "", apierr.NotFound("no profile for user")
	}
	customerID, err := s.ensureCustomer(ctx, view, id.Email)
	if err != nil {
		return "", err
	}
	url, err := s.payments.CreatePortalSession(ctx, customerID)
	if err != nil {
		return "", apierr.Internal(err)
	}
	return url, nil
}

// HandleWebhook applies provider-owned subscription fields through the
// webhook-only schema. The endpoint is unauthenticated; the HMAC signature is
// the only trust anchor.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.payments.VerifyWebhookSignature(payload, signature) {
		return apierr.Unauthorized("invalid webhook signature")
	}
	var ev struct {
		Type               string `json:"type"`
		CustomerID         string `json:"customer_id"`
		SubscriptionStatus string `json:"subscription_status"`
		PlanLevel          string `json:"plan_level"`
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		return apierr.InvalidInput("malformed webhook payload")
	}
	if ev.CustomerID == "" {
		return apierr.MissingFields("customer_id is required")
	}

	updates := sanitize.Apply(sanitize.SubscriptionFields, map[string]interface{}{
		"subscription_status": ev.SubscriptionStatus,
		"plan_level":          ev.PlanLevel,
	})
	if len(updates) == 0 {
		return nil
	}

	view, err := s.findByCustomerID(ctx, ev.CustomerID)
	if err != nil {
		return err
	}
	if view == nil {
		s.log.Warn("webhook for unknown customer", "event_type", ev.Type, "stripe_customer", ev.CustomerID)
		return nil
	}
	if view.Type == types.ProfileTypeBrand {
		err = s.brands.UpdateFields(ctx, view.Brand.ID, updates)
	} else {
		err = s.creators.UpdateFields(ctx, view.Creator.ID, updates)
	}
	if err != nil {
		return apierr.Internal(err)
	}

	s.audit.Record(ctx, audit.Entry{
		Action:     types.AuditActionSubscriptionChange,
		TargetType: "profile",
		TargetID:   view.ProfileID().String(),
		Details: map[string]interface{}{
			"event_type":          ev.Type,
			"subscription_status": ev.SubscriptionStatus,
			"plan_level":          ev.PlanLevel,
		},
	})
	return nil
}

// ensureCustomer resolves the provider customer, persisting a newly minted ID
// through the privileged field path.
func (s *billingService) ensureCustomer(ctx context.Context, view *ProfileView, email string) (string, error) {
	customerID, created, err := s.payments.EnsureCustomer(ctx, view.StripeCustomerID(), email, view.DisplayName())
	if err != nil {
		return "", apierr.Internal(err)
	}
	if created {
		updates := sanitize.Apply(sanitize.SubscriptionFields, map[string]interface{}{
			"stripe_customer_id": customerID,
		})
		if view.Type == types.ProfileTypeBrand {
			err = s.brands.UpdateFields(ctx, view.Brand.ID, updates)
		} else {
			err = s.creators.UpdateFields(ctx, view.Creator.ID, updates)
		}
		if err != nil {
			return "", apierr.Internal(err)
		}
	}
	return customerID, nil
}

func (s *billingService) findByCustomerID(ctx context.Context, customerID string) (*ProfileView, error) {
	brand, err := s.brands.GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand != nil {
		return &ProfileView{Type: types.ProfileTypeBrand, Brand: brand}, nil
	}
	creator, err := s.creators.GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if creator != nil {
		return &ProfileView{Type: types.ProfileTypeCreator, Creator: creator}, nil
	}
	return nil, nil
}
