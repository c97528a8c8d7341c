package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdshare/internal/adapters/out/identity"
	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/kernel"
)

const testSigningKey = "unit-test-signing-key"

func issueToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims(subject string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   subject,
		"email": "rancher@herdshare.test",
		"role":  "RANCHER",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestActorFromToken_ResolvesActor(t *testing.T) {
	provider, err := identity.NewJWTProvider(testSigningKey)
	require.NoError(t, err)

	subject := kernel.NewUUID()
	token := issueToken(t, testSigningKey, validClaims(subject.String()))

	actor, err := provider.ActorFromToken(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, actor.Validate())

	assert.True(t, actor.ID().IsEqual(subject))
	assert.Equal(t, "rancher@herdshare.test", actor.Email())
	assert.Equal(t, account.Rancher, actor.Role())
}

func TestActorFromToken_RejectsBadTokens(t *testing.T) {
	provider, err := identity.NewJWTProvider(testSigningKey)
	require.NoError(t, err)

	subject := kernel.NewUUID().String()

	expired := validClaims(subject)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noExpiry := validClaims(subject)
	delete(noExpiry, "exp")

	badRole := validClaims(subject)
	badRole["role"] = "SUPERUSER"

	badSubject := validClaims("not-a-uuid")

	noEmail := validClaims(subject)
	delete(noEmail, "email")

	tests := map[string]string{
		"empty token":    "",
		"garbage token":  "not.a.jwt",
		"wrong key":      issueToken(t, "other-key", validClaims(subject)),
		"expired":        issueToken(t, testSigningKey, expired),
		"missing expiry": issueToken(t, testSigningKey, noExpiry),
		"unknown role":   issueToken(t, testSigningKey, badRole),
		"non-uuid sub":   issueToken(t, testSigningKey, badSubject),
		"missing email":  issueToken(t, testSigningKey, noEmail),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := provider.ActorFromToken(context.Background(), token)
			require.Error(t, err)
			assert.ErrorIs(t, err, identity.ErrTokenInvalid)
		})
	}
}

func TestActorFromToken_RejectsUnsignedAlgorithm(t *testing.T) {
	provider, err := identity.NewJWTProvider(testSigningKey)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone,
		validClaims(kernel.NewUUID().String())).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = provider.ActorFromToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrTokenInvalid)
}

func TestNewJWTProvider_RequiresKey(t *testing.T) {
	_, err := identity.NewJWTProvider("")
	require.Error(t, err)
}
