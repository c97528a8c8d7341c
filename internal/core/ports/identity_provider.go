package ports

import (
	"context"

	"herdshare/internal/core/domain/model/account"
)

// IdentityProvider resolves an authenticated actor from a bearer token.
// User accounts live in an external identity service; this application only
// consumes the verified identity and role claims.
type IdentityProvider interface {
	// ActorFromToken verifies the bearer token and returns the actor it
	// represents. Returns an error for missing, expired, or tampered tokens.
	ActorFromToken(ctx context.Context, token string) (*account.Actor, error)
}
