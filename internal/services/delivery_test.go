package services

import (
	"context"
	"errors"
	"testing"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

// failingDisputeRepo breaks the second saga step so the compensation path is
// exercised.
type failingDisputeRepo struct {
	repos.DisputeRepo
}

func (failingDisputeRepo) Create(ctx context.Context, rows []*types.Dispute) ([]*types.Dispute, error) {
	return nil, errors.New("dispute store unavailable")
}

type deliveryFixture struct {
	brandCtx   context.Context
	creatorCtx context.Context
	brand      *types.Brand
	creator    *types.Creator
	delivery   *types.Delivery
}

func seedDeliveryFixture(t *testing.T, env *testEnv, status string) deliveryFixture {
	t.Helper()
	brandUser := env.seedUser(t, types.UserRoleUser)
	creatorUser := env.seedUser(t, types.UserRoleUser)
	brand := env.seedBrand(t, brandUser.ID)
	creator := env.seedCreator(t, creatorUser.ID)
	campaign := env.seedCampaign(t, brand.ID, types.CampaignStatusActive)
	delivery := env.seedDelivery(t, campaign.ID, brand.ID, creator.ID, status)
	return deliveryFixture{
		brandCtx:   authedCtx(brandUser.ID, brandUser.Role),
		creatorCtx: authedCtx(creatorUser.ID, creatorUser.Role),
		brand:      brand,
		creator:    creator,
		delivery:   delivery,
	}
}

func TestSubmitRequiresProof(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusPending)

	_, err := env.delivery.Submit(fx.creatorCtx, fx.delivery.ID, nil, "")
	wantCode(t, err, apierr.CodeMissingProof)

	// Invalid entries are filtered out before the count check.
	_, err = env.delivery.Submit(fx.creatorCtx, fx.delivery.ID, []interface{}{"not a url", "ftp://host/file"}, "")
	wantCode(t, err, apierr.CodeMissingProof)
}

func TestSubmitFromPending(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusPending)

	out, err := env.delivery.Submit(fx.creatorCtx, fx.delivery.ID, []interface{}{"https://cdn.example.com/post.mp4"}, "first cut")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Status != types.DeliveryStatusSubmitted {
		t.Fatalf("got status %q, want submitted", out.Status)
	}
	if !out.OnTime {
		t.Fatal("delivery without deadline should be on time")
	}
	if out.SubmittedAt == nil {
		t.Fatal("submitted_at not set")
	}

	// Resubmitting a submitted delivery is not a legal move.
	_, err = env.delivery.Submit(fx.creatorCtx, fx.delivery.ID, []interface{}{"https://cdn.example.com/post.mp4"}, "")
	wantCode(t, err, apierr.CodeInvalidTransition)
}

func TestSubmitOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusPending)

	otherUser := env.seedUser(t, types.UserRoleUser)
	env.seedCreator(t, otherUser.ID)
	_, err := env.delivery.Submit(authedCtx(otherUser.ID, otherUser.Role), fx.delivery.ID, []interface{}{"https://cdn.example.com/x"}, "")
	wantCode(t, err, apierr.CodeForbidden)

	// The owning brand cannot submit either.
	_, err = env.delivery.Submit(fx.brandCtx, fx.delivery.ID, []interface{}{"https://cdn.example.com/x"}, "")
	wantCode(t, err, apierr.CodeForbidden)
}

func TestContestOpensDispute(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)

	result, err := env.delivery.Contest(fx.brandCtx, fx.delivery.ID, "wrong product shown")
	if err != nil {
		t.Fatalf("contest: %v", err)
	}
	if result.Delivery.Status != types.DeliveryStatusInDispute {
		t.Fatalf("got delivery status %q, want in_dispute", result.Delivery.Status)
	}
	if result.Dispute.Status != types.DisputeStatusOpen {
		t.Fatalf("got dispute status %q, want open", result.Dispute.Status)
	}

	// A second contest is blocked by the status, not the open-dispute check.
	_, err = env.delivery.Contest(fx.brandCtx, fx.delivery.ID, "still wrong")
	wantCode(t, err, apierr.CodeInvalidTransition)
}

func TestContestRollbackRestoresDelivery(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)

	broken := NewDeliveryService(logger.NewNop(), env.deliveries, failingDisputeRepo{env.disputes}, env.brands, env.creators, env.sagaExec, env.notification, env.dispatcher)
	_, err := broken.Contest(fx.brandCtx, fx.delivery.ID, "wrong product shown")
	wantCode(t, err, apierr.CodeInternal)

	after, getErr := env.deliveries.GetByID(context.Background(), fx.delivery.ID)
	if getErr != nil {
		t.Fatalf("reload delivery: %v", getErr)
	}
	if after.Status != types.DeliveryStatusSubmitted {
		t.Fatalf("got status %q, want submitted restored", after.Status)
	}
	if after.ContestedAt != nil {
		t.Fatalf("contested_at not cleared: %v", after.ContestedAt)
	}
	if after.ContestReason != "" {
		t.Fatalf("contest_reason not cleared: %q", after.ContestReason)
	}

	var count int64
	if err := env.db.Model(&types.Dispute{}).Count(&count).Error; err != nil {
		t.Fatalf("count disputes: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d dispute rows after rollback, want 0", count)
	}

	// The unwound delivery can still be contested through the working path.
	if _, err := env.delivery.Contest(fx.brandCtx, fx.delivery.ID, "wrong product shown"); err != nil {
		t.Fatalf("contest after rollback: %v", err)
	}
}

func TestReviewVerdicts(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)

	_, err := env.delivery.Review(fx.brandCtx, fx.delivery.ID, "maybe", "")
	wantCode(t, err, apierr.CodeInvalidAction)

	out, err := env.delivery.Review(fx.brandCtx, fx.delivery.ID, ReviewVerdictApprove, "great work")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if out.Status != types.DeliveryStatusApproved {
		t.Fatalf("got status %q, want approved", out.Status)
	}
	if out.ReviewedAt == nil {
		t.Fatal("reviewed_at not set")
	}

	// Approved is terminal.
	_, err = env.delivery.Review(fx.brandCtx, fx.delivery.ID, ReviewVerdictReject, "")
	wantCode(t, err, apierr.CodeInvalidTransition)
}

func TestReviewRequiresOwningBrand(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)

	otherUser := env.seedUser(t, types.UserRoleUser)
	env.seedBrand(t, otherUser.ID)
	_, err := env.delivery.Review(authedCtx(otherUser.ID, otherUser.Role), fx.delivery.ID, ReviewVerdictApprove, "")
	wantCode(t, err, apierr.CodeForbidden)
}
