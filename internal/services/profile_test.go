package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

func TestSelectCreatesProfileOnce(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := authedCtx(userID, types.UserRoleUser)

	view, existed, err := env.profile.Select(ctx, types.ProfileTypeBrand)
	if err != nil {
		t.Fatalf("first select: %v", err)
	}
	if existed {
		t.Fatal("first select reported an existing profile")
	}
	if view.Type != types.ProfileTypeBrand || view.Brand == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.AccountState() != types.AccountStateIncomplete {
		t.Fatalf("got account state %q, want incomplete", view.AccountState())
	}

	again, existed, err := env.profile.Select(ctx, types.ProfileTypeBrand)
	if err != nil {
		t.Fatalf("second select: %v", err)
	}
	if !existed {
		t.Fatal("second select did not short-circuit")
	}
	if again.ProfileID() != view.ProfileID() {
		t.Fatalf("second select returned a different profile: %s vs %s", again.ProfileID(), view.ProfileID())
	}

	var count int64
	if err := env.db.Model(&types.Brand{}).Count(&count).Error; err != nil {
		t.Fatalf("count brands: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d brand rows, want 1", count)
	}
}

func TestSelectSeedsVerifiedRole(t *testing.T) {
	env := newTestEnv(t)
	adminID := uuid.New()
	if _, _, err := env.profile.Select(authedCtx(adminID, types.UserRoleAdmin), types.ProfileTypeBrand); err != nil {
		t.Fatalf("select as admin: %v", err)
	}
	row, err := env.users.GetByID(context.Background(), adminID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if row.Role != types.UserRoleAdmin {
		t.Fatalf("got seeded role %q, want admin preserved", row.Role)
	}

	// Unrecognized roles collapse to plain user.
	otherID := uuid.New()
	if _, _, err := env.profile.Select(authedCtx(otherID, "superuser"), types.ProfileTypeCreator); err != nil {
		t.Fatalf("select: %v", err)
	}
	other, err := env.users.GetByID(context.Background(), otherID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if other.Role != types.UserRoleUser {
		t.Fatalf("got seeded role %q, want user", other.Role)
	}
}

func TestSelectRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	ctx := authedCtx(uuid.New(), types.UserRoleUser)
	_, _, err := env.profile.Select(ctx, "agency")
	wantCode(t, err, apierr.CodeInvalidInput)
}

func TestMeWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, types.UserRoleUser)
	_, err := env.profile.Me(authedCtx(u.ID, u.Role))
	wantCode(t, err, apierr.CodeNotFound)
}

func TestUpdateDropsProtectedFields(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, types.UserRoleUser)
	env.seedBrand(t, u.ID)
	ctx := authedCtx(u.ID, u.Role)

	// Only protected or unknown keys: the sanitized set is empty.
	_, err := env.profile.Update(ctx, map[string]interface{}{
		"account_state":      types.AccountStateIncomplete,
		"plan_level":         "enterprise",
		"stripe_customer_id": "cus_evil",
		"nonsense":           42,
	})
	wantCode(t, err, apierr.CodeNoChanges)

	view, err := env.profile.Update(ctx, map[string]interface{}{
		"company_name":  "Fresh Roast Co",
		"account_state": types.AccountStateIncomplete,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Brand.CompanyName != "Fresh Roast Co" {
		t.Fatalf("company_name not applied: %q", view.Brand.CompanyName)
	}
	if view.AccountState() != types.AccountStateReady {
		t.Fatalf("protected account_state was modified: %q", view.AccountState())
	}
}

func TestUpdateRejectsInvertedRates(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, types.UserRoleUser)
	env.seedCreator(t, u.ID)
	ctx := authedCtx(u.ID, u.Role)

	_, err := env.profile.Update(ctx, map[string]interface{}{
		"min_rate": float64(500),
		"max_rate": float64(100),
	})
	wantCode(t, err, apierr.CodeInvalidRateRange)
}

func TestAdvanceOnboardingForwardOnly(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := authedCtx(userID, types.UserRoleUser)
	if _, _, err := env.profile.Select(ctx, types.ProfileTypeCreator); err != nil {
		t.Fatalf("select: %v", err)
	}

	view, err := env.profile.AdvanceOnboarding(ctx, 3, map[string]interface{}{"display_name": "Jo"})
	if err != nil {
		t.Fatalf("advance to 3: %v", err)
	}
	if view.OnboardingStep() != 3 {
		t.Fatalf("got step %d, want 3", view.OnboardingStep())
	}
	if view.AccountState() != types.AccountStateExploring {
		t.Fatalf("got state %q, want exploring after step 2", view.AccountState())
	}

	_, err = env.profile.AdvanceOnboarding(ctx, 2, nil)
	wantCode(t, err, apierr.CodeInvalidStep)

	_, err = env.profile.AdvanceOnboarding(ctx, 9, nil)
	wantCode(t, err, apierr.CodeInvalidStep)
}

func TestAdvanceOnboardingIgnoresFieldsOutsideContentSteps(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := authedCtx(userID, types.UserRoleUser)
	if _, _, err := env.profile.Select(ctx, types.ProfileTypeCreator); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := env.profile.AdvanceOnboarding(ctx, 2, map[string]interface{}{"display_name": "Jo"}); err != nil {
		t.Fatalf("advance to 2: %v", err)
	}

	// The final step moves the cursor only; the payload is dropped.
	view, err := env.profile.AdvanceOnboarding(ctx, 5, map[string]interface{}{"display_name": "Overwritten"})
	if err != nil {
		t.Fatalf("advance to 5: %v", err)
	}
	if view.OnboardingStep() != 5 {
		t.Fatalf("got step %d, want 5", view.OnboardingStep())
	}
	if view.Creator.DisplayName != "Jo" {
		t.Fatalf("final step applied profile fields: %q", view.Creator.DisplayName)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := authedCtx(userID, types.UserRoleUser)
	if _, _, err := env.profile.Select(ctx, types.ProfileTypeCreator); err != nil {
		t.Fatalf("select: %v", err)
	}

	view, err := env.profile.Finalize(ctx)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if view.AccountState() != types.AccountStateReady || view.OnboardingStep() != types.OnboardingStepFinal {
		t.Fatalf("got state %q step %d, want ready/%d", view.AccountState(), view.OnboardingStep(), types.OnboardingStepFinal)
	}

	again, err := env.profile.Finalize(ctx)
	if err != nil {
		t.Fatalf("second finalize: %v", err)
	}
	if again.AccountState() != types.AccountStateReady {
		t.Fatalf("second finalize changed state to %q", again.AccountState())
	}

	// Drain the mission generation task before counting.
	env.dispatcher.Close()
	missions, err := env.missions.ListByProfileID(ctx, view.ProfileID())
	if err != nil {
		t.Fatalf("list missions: %v", err)
	}
	if len(missions) != 3 {
		t.Fatalf("got %d missions, want 3", len(missions))
	}
}

func TestSwitchSameTypeIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, types.UserRoleUser)
	b := env.seedBrand(t, u.ID)
	ctx := authedCtx(u.ID, u.Role)

	view, err := env.profile.Switch(ctx, types.ProfileTypeBrand)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if view.ProfileID() != b.ID {
		t.Fatalf("same-type switch replaced the profile: %s vs %s", view.ProfileID(), b.ID)
	}
	var count int64
	if err := env.db.Model(&types.AuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("no-op switch wrote %d audit rows", count)
	}
}
