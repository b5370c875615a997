package services

import (
	"testing"
	"time"

	"employee-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(secret string) InterfaceJWTService {
	return NewJWTService(&config.Config{JWTSecretKey: secret})
}

func TestJWTService_GenerateAndExtract(t *testing.T) {
	svc := newTestJWTService("test-secret")

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "employee-http-service", claims.Issuer)
}

func TestJWTService_TokenExpiresInOneHour(t *testing.T) {
	svc := newTestJWTService("test-secret")

	token, err := svc.GenerateToken(1)
	require.NoError(t, err)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, lifetime)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	token, err := newTestJWTService("secret-a").GenerateToken(1)
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc := newTestJWTService("test-secret")

	_, err := svc.ExtractClaims("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
