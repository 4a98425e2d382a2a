package internal

import "context"

// ActingUser is the already-authenticated principal the presentation layer
// supplies with each request. Identity verification is not this service's
// concern; only the directory lookup behind the id is.
type ActingUser struct {
	ID        int64
	Name      string
	Role      string
	ManagerID *int64
}

type contextKey string

const actingUserKey contextKey = "acting_user"

func ContextWithActingUser(ctx context.Context, user *ActingUser) context.Context {
	return context.WithValue(ctx, actingUserKey, user)
}

func ActingUserFromContext(ctx context.Context) (*ActingUser, bool) {
	user, ok := ctx.Value(actingUserKey).(*ActingUser)
	return user, ok
}
