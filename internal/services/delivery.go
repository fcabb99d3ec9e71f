package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/sanitize"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/transition"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

const (
	ReviewVerdictApprove = "approve"
	ReviewVerdictReject  = "reject"
)

// ContestResult carries both records written by a successful contest.
type ContestResult struct {
	Delivery *types.Delivery `json:"delivery"`
	Dispute  *types.Dispute  `json:"dispute"`
}

type DeliveryService interface {
	Submit(ctx context.Context, deliveryID uuid.UUID, proofURLs interface{}, note string) (*types.Delivery, error)
	Contest(ctx context.Context, deliveryID uuid.UUID, reason string) (*ContestResult, error)
	Review(ctx context.Context, deliveryID uuid.UUID, verdict, feedback string) (*types.Delivery, error)
	List(ctx context.Context) ([]*types.Delivery, error)
}

type deliveryService struct {
	log           *logger.Logger
	deliveries    repos.DeliveryRepo
	disputes      repos.DisputeRepo
	brands        repos.BrandRepo
	creators      repos.CreatorRepo
	saga          *saga.Executor
	notifications NotificationService
	dispatcher    *tasks.Dispatcher
}

func NewDeliveryService(
	baseLog *logger.Logger,
	deliveries repos.DeliveryRepo,
	disputes repos.DisputeRepo,
	brands repos.BrandRepo,
	creators repos.CreatorRepo,
	sagaExec *saga.Executor,
	notifications NotificationService,
	dispatcher *tasks.Dispatcher,
) DeliveryService {
	return &deliveryService{
		log:           baseLog.With("service", "DeliveryService"),
		deliveries:    deliveries,
		disputes:      disputes,
		brands:        brands,
		creators:      creators,
		saga:          sagaExec,
		notifications: notifications,
		dispatcher:    dispatcher,
	}
}

func (s *deliveryService) Submit(ctx context.Context, deliveryID uuid.UUID, proofURLs interface{}, note string) (*types.Delivery, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	delivery, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if delivery == nil {
		return nil, apierr.NotFound("delivery not found")
	}
	creator, err := s.creators.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if creator == nil || creator.ID != delivery.CreatorID {
		return nil, apierr.Forbidden("delivery belongs to another creator")
	}
	urls := sanitize.URLList(proofURLs)
	if len(urls) == 0 {
		return nil, apierr.MissingProof("at least one valid proof URL is required")
	}
	if !transition.Allowed(transition.EntityDelivery, delivery.Status, types.DeliveryStatusSubmitted) {
		return nil, apierr.InvalidTransition(delivery.Status, types.DeliveryStatusSubmitted)
	}

	now := time.Now().UTC()
	onTime := delivery.Deadline == nil || !now.After(*delivery.Deadline)
	raw, err := json.Marshal(urls)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	updates := map[string]interface{}{
		"status":       types.DeliveryStatusSubmitted,
		"proof_urls":   datatypes.JSON(raw),
		"note":         strings.TrimSpace(note),
		"submitted_at": now,
		"on_time":      onTime,
	}
	if err := s.deliveries.UpdateFields(ctx, delivery.ID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	out, err := s.deliveries.GetByID(ctx, delivery.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

// Contest moves a submitted delivery into dispute. The delivery flip and the
// dispute row are two store writes, so they run as a compensated sequence: a
// failed dispute create reverts the delivery fields it touched.
func (s *deliveryService) Contest(ctx context.Context, deliveryID uuid.UUID, reason string) (*ContestResult, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apierr.MissingFields("reason is required")
	}
	delivery, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if delivery == nil {
		return nil, apierr.NotFound("delivery not found")
	}
	brand, err := s.brands.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand == nil || brand.ID != delivery.BrandID {
		return nil, apierr.Forbidden("delivery belongs to another brand")
	}
	if !transition.Allowed(transition.EntityDelivery, delivery.Status, types.DeliveryStatusInDispute) {
		return nil, apierr.InvalidTransition(delivery.Status, types.DeliveryStatusInDispute)
	}
	open, err := s.disputes.GetOpenByDeliveryID(ctx, delivery.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if open != nil {
		return nil, apierr.Validation("delivery already has an open dispute")
	}

	now := time.Now().UTC()
	prior := *delivery
	dispute := &types.Dispute{
		ID:             uuid.New(),
		DeliveryID:     delivery.ID,
		CampaignID:     delivery.CampaignID,
		RaisedBy:       types.DisputePartyBrand,
		Reason:         reason,
		BrandStatement: reason,
		Status:         types.DisputeStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	steps := []saga.Step{
		{
			Name: "mark_in_dispute",
			Run: func(ctx context.Context) error {
				return s.deliveries.UpdateFields(ctx, delivery.ID, map[string]interface{}{
					"status":         types.DeliveryStatusInDispute,
					"contested_at":   now,
					"contest_reason": reason,
				})
			},
			Compensate: func(ctx context.Context) error {
				return s.deliveries.UpdateFields(ctx, delivery.ID, map[string]interface{}{
					"status":         prior.Status,
					"contested_at":   prior.ContestedAt,
					"contest_reason": prior.ContestReason,
					"reviewed_at":    prior.ReviewedAt,
				})
			},
		},
		{
			Name: "open_dispute",
			Run: func(ctx context.Context) error {
				_, err := s.disputes.Create(ctx, []*types.Dispute{dispute})
				return err
			},
		},
	}
	if err := s.saga.Execute(ctx, "delivery_contest", steps); err != nil {
		return nil, sagaError(err)
	}

	updated, err := s.deliveries.GetByID(ctx, delivery.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.notifyCreator(delivery.CreatorID, types.NotificationKindDeliveryContested,
		"Delivery contested", "The brand opened a dispute on your delivery.",
		map[string]interface{}{"delivery_id": delivery.ID, "dispute_id": dispute.ID})
	return &ContestResult{Delivery: updated, Dispute: dispute}, nil
}

func (s *deliveryService) Review(ctx context.Context, deliveryID uuid.UUID, verdict, feedback string) (*types.Delivery, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := verdictStatus(verdict)
	if !ok {
		return nil, apierr.InvalidAction(verdict)
	}
	delivery, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if delivery == nil {
		return nil, apierr.NotFound("delivery not found")
	}
	brand, err := s.brands.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand == nil || brand.ID != delivery.BrandID {
		return nil, apierr.Forbidden("delivery belongs to another brand")
	}
	if !transition.Allowed(transition.EntityDelivery, delivery.Status, target) {
		return nil, apierr.InvalidTransition(delivery.Status, target)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      target,
		"feedback":    strings.TrimSpace(feedback),
		"reviewed_at": now,
	}
	if err := s.deliveries.UpdateFields(ctx, delivery.ID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	out, err := s.deliveries.GetByID(ctx, delivery.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.notifyCreator(delivery.CreatorID, types.NotificationKindDeliveryReviewed,
		"Delivery reviewed", "Your delivery was "+target+".",
		map[string]interface{}{"delivery_id": delivery.ID, "status": target})
	return out, nil
}

func (s *deliveryService) List(ctx context.Context) ([]*types.Delivery, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	view, err := resolveProfile(ctx, s.brands, s.creators, id.UserID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apierr.NotFound("no profile for user")
	}
	var out []*types.Delivery
	if view.Type == types.ProfileTypeBrand {
		out, err = s.deliveries.ListByBrandID(ctx, view.Brand.ID)
	} else {
		out, err = s.deliveries.ListByCreatorID(ctx, view.Creator.ID)
	}
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return out, nil
}

func verdictStatus(verdict string) (string, bool) {
	switch verdict {
	case ReviewVerdictApprove:
		return types.DeliveryStatusApproved, true
	case ReviewVerdictReject:
		return types.DeliveryStatusRejected, true
	default:
		return "", false
	}
}

func (s *deliveryService) notifyCreator(creatorID uuid.UUID, kind, title, body string, payload map[string]interface{}) {
	s.dispatcher.Go("notify_creator", func(taskCtx context.Context) error {
		creator, err := s.creators.GetByID(taskCtx, creatorID)
		if err != nil || creator == nil {
			return err
		}
		return s.notifications.Push(taskCtx, creator.UserID, kind, title, body, payload)
	})
}
