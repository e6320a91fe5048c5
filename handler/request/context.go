package request

import (
	"context"

	"moneymarket/core"
)

type key int

const (
	userKey key = iota
)

// WithUser context carrying the logged in user
func WithUser(ctx context.Context, user *core.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom the logged in user of ctx
func UserFrom(ctx context.Context) (*core.User, bool) {
	user, ok := ctx.Value(userKey).(*core.User)
	return user, ok
}
