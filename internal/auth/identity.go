package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, taken from a verified token.
type Identity struct {
	UserID    uuid.UUID
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

type identityCtxKey struct{}

func NewContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// FromContext returns the identity placed by the auth middleware, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok
}
