package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

// ProfileView is a profile together with its variant discriminant. Exactly one
// of Brand or Creator is set.
type ProfileView struct {
	Type    string         `json:"type"`
	Brand   *types.Brand   `json:"brand,omitempty"`
	Creator *types.Creator `json:"creator,omitempty"`
}

func (v *ProfileView) ProfileID() uuid.UUID {
	if v == nil {
		return uuid.Nil
	}
	if v.Brand != nil {
		return v.Brand.ID
	}
	if v.Creator != nil {
		return v.Creator.ID
	}
	return uuid.Nil
}

func (v *ProfileView) AccountState() string {
	if v == nil {
		return ""
	}
	if v.Brand != nil {
		return v.Brand.AccountState
	}
	if v.Creator != nil {
		return v.Creator.AccountState
	}
	return ""
}

func (v *ProfileView) OnboardingStep() int {
	if v == nil {
		return 0
	}
	if v.Brand != nil {
		return v.Brand.OnboardingStep
	}
	if v.Creator != nil {
		return v.Creator.OnboardingStep
	}
	return 0
}

func (v *ProfileView) StripeCustomerID() string {
	if v == nil {
		return ""
	}
	if v.Brand != nil {
		return v.Brand.StripeCustomerID
	}
	if v.Creator != nil {
		return v.Creator.StripeCustomerID
	}
	return ""
}

func (v *ProfileView) DisplayName() string {
	if v == nil {
		return ""
	}
	if v.Brand != nil {
		return v.Brand.CompanyName
	}
	if v.Creator != nil {
		return v.Creator.DisplayName
	}
	return ""
}

func callerIdentity(ctx context.Context) (*ctxutil.Identity, error) {
	id := ctxutil.GetIdentity(ctx)
	if id == nil || id.UserID == uuid.Nil {
		return nil, apierr.Unauthorized("no verified identity on request")
	}
	return id, nil
}

func requireAdmin(ctx context.Context) (*ctxutil.Identity, error) {
	id, err := callerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, apierr.Forbidden("admin role required")
	}
	return id, nil
}

// resolveProfile finds the caller's profile in either variant table. Returns
// nil when the user has no profile yet.
func resolveProfile(ctx context.Context, brands repos.BrandRepo, creators repos.CreatorRepo, userID uuid.UUID) (*ProfileView, error) {
	brand, err := brands.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if brand != nil {
		return &ProfileView{Type: types.ProfileTypeBrand, Brand: brand}, nil
	}
	creator, err := creators.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if creator != nil {
		return &ProfileView{Type: types.ProfileTypeCreator, Creator: creator}, nil
	}
	return nil, nil
}

// encodeStringArrays converts sanitized []string values into JSON column
// payloads before they reach the store.
func encodeStringArrays(updates map[string]interface{}, keys ...string) {
	for _, key := range keys {
		arr, ok := updates[key].([]string)
		if !ok {
			continue
		}
		raw, err := json.Marshal(arr)
		if err != nil {
			delete(updates, key)
			continue
		}
		updates[key] = datatypes.JSON(raw)
	}
}

// sagaError maps an executor failure to the internal error surfaced on the
// wire, noting whether the partial writes were rolled back.
func sagaError(err error) error {
	var execErr *saga.ExecutionError
	if errors.As(err, &execErr) {
		if execErr.Unwound() {
			return apierr.Internal(fmt.Errorf("%s; all changes rolled back", execErr.Error()))
		}
		return apierr.Internal(fmt.Errorf("%s; rollback incomplete, manual reconciliation required", execErr.Error()))
	}
	return apierr.From(err)
}
