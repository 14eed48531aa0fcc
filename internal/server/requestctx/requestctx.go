// Package requestctx carries the authenticated caller through a request.
package requestctx

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the user stored by WithUser.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
