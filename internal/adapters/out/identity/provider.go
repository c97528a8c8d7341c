// Package identity resolves authenticated actors from bearer tokens issued by
// the external identity service. Accounts, passwords, and token issuance live
// in that service; this adapter only verifies signatures and maps the claims
// onto the domain's actor model.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrTokenInvalid is returned for tokens that are missing, expired, tampered
// with, or carry unusable claims.
var ErrTokenInvalid = errors.New("bearer token is invalid")

// actorClaims is the claim set the identity service issues. The subject is
// the account id in our UUID space.
type actorClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTProvider verifies HS256 tokens with a shared signing key.
type JWTProvider struct {
	parser     *jwt.Parser
	signingKey []byte
}

// NewJWTProvider creates an identity provider adapter.
func NewJWTProvider(signingKey string) (*JWTProvider, error) {
	if signingKey == "" {
		return nil, errs.NewValueIsRequiredError("jwt signing key")
	}

	return &JWTProvider{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		signingKey: []byte(signingKey),
	}, nil
}

// ActorFromToken verifies the bearer token and returns the actor it
// represents.
func (p *JWTProvider) ActorFromToken(_ context.Context, token string) (*account.Actor, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is missing", ErrTokenInvalid)
	}

	claims := &actorClaims{}
	parsed, err := p.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return p.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a uuid", ErrTokenInvalid)
	}

	role, err := account.RoleFromString(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	actor, err := account.NewActor(id, claims.Email, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return &actor, nil
}
