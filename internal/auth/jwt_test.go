package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService()

	token, expiresAt, err := service.Generate("admin@example.com", RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Subject)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService("a-completely-different-secret-key", 15*time.Minute)

	token, _, err := service.Generate("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	service := NewJWTService("test-secret-key-for-testing-purposes", -time.Minute)

	token, _, err := service.Generate("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	service := newTestJWTService()

	_, err := service.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_WrongSigningMethod(t *testing.T) {
	service := newTestJWTService()

	// Unsigned token must be rejected
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin@example.com"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
