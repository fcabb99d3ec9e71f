package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the verified caller attached to a request context by the auth
// middleware. Role mirrors the user record, not the profile variant.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == "admin"
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}
