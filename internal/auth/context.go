package auth

import (
	"context"

	"libraryql/internal/user"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// WithUser returns a context carrying the authenticated caller.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// UserFrom returns the authenticated caller attached to the context, if any.
// An anonymous context returns ok=false.
func UserFrom(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(currentUserKey).(user.User)
	return u, ok
}
