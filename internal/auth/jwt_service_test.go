package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateToken(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, TokenExpiry.Seconds(), claims.Remaining(time.Now()).Seconds(), 5)
}

func TestJWTService_UniqueIDs(t *testing.T) {
	svc := NewJWTService("secret")

	a, err := svc.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	b, err := svc.GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	ca, _ := svc.ValidateToken(a)
	cb, _ := svc.ValidateToken(b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other").GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret")
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, err := svc.GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret").ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenStore_NilCacheNeverRevokes(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti", time.Hour))
	revoked, err := store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
