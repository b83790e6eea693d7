package auth

import "context"

// Identity is the authenticated caller as resolved by the authentication
// gate: the stored user plus the role claim the bearer token carries. The
// token role is the role the session is currently "wearing" and may differ
// from User.Role between a role switch and the next login.
type Identity struct {
	User      *User
	TokenRole string
}

type identityContextKey struct{}

// ContextWithIdentity attaches the authenticated identity to the context.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, &identity)
}

// IdentityFromContext extracts the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	v, ok := ctx.Value(identityContextKey{}).(*Identity)
	if !ok || v == nil || v.User == nil {
		return Identity{}, false
	}
	return *v, true
}
