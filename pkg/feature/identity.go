package feature

import "context"

// Identity describes the caller a flag is evaluated for. Both fields are
// optional; the zero Identity is an anonymous caller that skips the group
// and rollout gates.
type Identity struct {
	// Group is the caller's classification (e.g. "admin", "sales"), matched
	// against a flag's allow-list.
	Group string

	// UserID is a stable identifier used to bucket the caller for
	// percentage rollouts. The same UserID always lands in the same bucket.
	UserID string
}

// Anonymous is the identity of a caller with no group and no user ID.
var Anonymous = Identity{}

type identityContextKey struct{}

// WithIdentity attaches the caller identity to a context, typically done
// once per request by authentication middleware.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the caller identity from a context. A
// missing value yields the anonymous identity, never an error.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Anonymous
	}
	id, _ := ctx.Value(identityContextKey{}).(Identity)
	return id
}
