package auth

import "context"

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

type identityKey struct{}

// WithIdentity binds id to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity bound by the access guard.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != ""
}
