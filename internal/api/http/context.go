package http

import (
	"context"

	"ev-rental-backend/internal/domain"
)

type contextKey int

const authContextKey contextKey = iota

// AuthContext is the explicit identity handlers receive. It is built from the
// validated access token by the auth middleware; nothing downstream reads the
// request headers again.
type AuthContext struct {
	UserID string
	Role   domain.UserRole
}

func withAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// AuthFromContext returns the caller identity set by the auth middleware.
func AuthFromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey).(AuthContext)
	return ac, ok
}
