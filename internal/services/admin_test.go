package services

import (
	"context"
	"testing"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

func adminCtx(env *testEnv, t *testing.T) context.Context {
	t.Helper()
	admin := env.seedUser(t, types.UserRoleAdmin)
	return authedCtx(admin.ID, admin.Role)
}

func (e *testEnv) countAudit(t *testing.T, action string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&types.AuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	return count
}

func TestChangeUserRoleRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	target := env.seedUser(t, types.UserRoleUser)
	caller := env.seedUser(t, types.UserRoleUser)

	_, err := env.admin.ChangeUserRole(authedCtx(caller.ID, caller.Role), target.ID, types.UserRoleAdmin)
	wantCode(t, err, apierr.CodeForbidden)
}

func TestChangeUserRolePlainRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(env, t)
	target := env.seedUser(t, types.UserRoleUser)

	if _, err := env.admin.ChangeUserRole(ctx, target.ID, types.UserRoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	updated, err := env.users.GetByID(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.Role != types.UserRoleAdmin {
		t.Fatalf("got role %q, want admin", updated.Role)
	}
	if n := env.countAudit(t, types.AuditActionRoleSwitch); n != 1 {
		t.Fatalf("got %d role_switch audit rows, want 1", n)
	}

	_, err = env.admin.ChangeUserRole(ctx, target.ID, "superuser")
	wantCode(t, err, apierr.CodeInvalidInput)
}

func TestRoleSwitchCarriesSubscription(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(env, t)
	target := env.seedUser(t, types.UserRoleUser)
	creator := env.seedCreator(t, target.ID)
	updates := map[string]interface{}{
		"subscription_status": "active",
		"plan_level":          "pro",
		"stripe_customer_id":  "cus_123",
	}
	if err := env.creators.UpdateFields(context.Background(), creator.ID, updates); err != nil {
		t.Fatalf("seed subscription fields: %v", err)
	}

	view, err := env.admin.ChangeUserRole(ctx, target.ID, types.ProfileTypeBrand)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if view.Type != types.ProfileTypeBrand || view.Brand == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Brand.SubscriptionStatus != "active" || view.Brand.PlanLevel != "pro" || view.Brand.StripeCustomerID != "cus_123" {
		t.Fatalf("subscription fields not carried: %+v", view.Brand)
	}
	if view.AccountState() != creator.AccountState {
		t.Fatalf("account state not carried: %q", view.AccountState())
	}

	gone, err := env.creators.GetByID(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("reload creator: %v", err)
	}
	if gone != nil {
		t.Fatal("old creator row survived the switch")
	}
	if n := env.countAudit(t, types.AuditActionRoleSwitch); n != 1 {
		t.Fatalf("got %d role_switch audit rows, want 1", n)
	}
}

func TestAdminUpdateProfileProtectedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(env, t)
	target := env.seedUser(t, types.UserRoleUser)
	creator := env.seedCreator(t, target.ID)

	// ready -> exploring moves backwards.
	_, err := env.admin.UpdateProfile(ctx, creator.ID, map[string]interface{}{
		"account_state": types.AccountStateExploring,
	})
	wantCode(t, err, apierr.CodeInvalidTransition)

	_, err = env.admin.UpdateProfile(ctx, creator.ID, map[string]interface{}{
		"onboarding_step": float64(11),
	})
	wantCode(t, err, apierr.CodeInvalidStep)

	view, err := env.admin.UpdateProfile(ctx, creator.ID, map[string]interface{}{
		"plan_level":   "pro",
		"display_name": "Jo M",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Creator.PlanLevel != "pro" || view.Creator.DisplayName != "Jo M" {
		t.Fatalf("fields not applied: %+v", view.Creator)
	}
	if n := env.countAudit(t, types.AuditActionAdminUpdateProfile); n != 1 {
		t.Fatalf("got %d admin_update_profile audit rows, want 1", n)
	}
}

func TestResolveDispute(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx(env, t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)

	result, err := env.delivery.Contest(fx.brandCtx, fx.delivery.ID, "missing disclosure tag")
	if err != nil {
		t.Fatalf("contest: %v", err)
	}

	_, err = env.admin.ResolveDispute(ctx, result.Dispute.ID, "split", "")
	wantCode(t, err, apierr.CodeInvalidAction)

	resolved, err := env.admin.ResolveDispute(ctx, result.Dispute.ID, ReviewVerdictReject, "tag was required by the brief")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Dispute.Status != types.DisputeStatusResolved {
		t.Fatalf("got dispute status %q, want resolved", resolved.Dispute.Status)
	}
	if resolved.Delivery.Status != types.DeliveryStatusRejected {
		t.Fatalf("got delivery status %q, want rejected", resolved.Delivery.Status)
	}
	if n := env.countAudit(t, types.AuditActionDisputeResolved); n != 1 {
		t.Fatalf("got %d dispute_resolved audit rows, want 1", n)
	}

	// Resolved disputes stay resolved.
	_, err = env.admin.ResolveDispute(ctx, result.Dispute.ID, ReviewVerdictApprove, "")
	wantCode(t, err, apierr.CodeInvalidTransition)
}

func TestResolveDisputeRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	fx := seedDeliveryFixture(t, env, types.DeliveryStatusSubmitted)
	result, err := env.delivery.Contest(fx.brandCtx, fx.delivery.ID, "reason")
	if err != nil {
		t.Fatalf("contest: %v", err)
	}
	_, err = env.admin.ResolveDispute(fx.brandCtx, result.Dispute.ID, ReviewVerdictApprove, "")
	wantCode(t, err, apierr.CodeForbidden)
}

func TestListAuditRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, types.UserRoleUser)
	_, err := env.admin.ListAudit(authedCtx(user.ID, user.Role), 10)
	wantCode(t, err, apierr.CodeForbidden)

	ctx := adminCtx(env, t)
	if _, err := env.admin.ListAudit(ctx, 10); err != nil {
		t.Fatalf("list audit: %v", err)
	}
}
