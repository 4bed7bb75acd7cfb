// Package clientcontext carries the authenticated portal contact through
// request contexts. Every query the portal runs is scoped by this identity.
package clientcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Identity is the resolved portal caller: the contact, the client record it
// belongs to, and the company that owns that client.
type Identity struct {
	ContactID  snowflake.ID
	ClientID   snowflake.ID
	CompanyID  snowflake.ID
	Locale     string
	SessionKey string
}

type identityKey struct{}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity from context, if set.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.ClientID == 0 {
		return Identity{}, false
	}
	return id, true
}
