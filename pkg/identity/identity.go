package identity

import (
	"context"

	"github.com/trustseal/trustseal-go/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated caller of a request. The issuance
// orchestrator takes the issuer from here, never from a caller-supplied
// header.
type Identity struct {
	// UserID is the internal ID of the authenticated user.
	UserID int64
	// Username is the login the token was minted for.
	Username string
	// Role is the role claimed by the token.
	Role model.Role
}

// CanIssue returns true if the caller is allowed to mint credentials.
func (i *Identity) CanIssue() bool {
	return i.Role == model.RoleIssuerAdmin
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
