package middlewarex

import (
	"context"

	"ginsengcms/internal/domain/user"
)

type ctxKey string

const ctxUser ctxKey = "current_user"

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxUser).(*user.User)
	return u, ok
}
