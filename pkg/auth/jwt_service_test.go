package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID, true)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.True(t, claims.EmailConfirmed)
	assert.Equal(t, "devfolio-api", claims.Issuer)
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New(), false)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)
	token, err := svc.GenerateToken(uuid.New(), false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ConfirmTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateConfirmToken(userID)
	require.NoError(t, err)

	got, err := svc.ValidateConfirmToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_ConfirmTokenNotAcceptedAsAccessTokenAudience(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	access, err := svc.GenerateToken(uuid.New(), false)
	require.NoError(t, err)

	_, err = svc.ValidateConfirmToken(access)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, CheckPasswordHash("supersecret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
