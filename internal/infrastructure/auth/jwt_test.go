package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-123",
		TokenExpiration: expiration,
		Issuer:          "storefront-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	t.Run("issues a bearer token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), false)
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
	})

	t.Run("rejects a nil customer id", func(t *testing.T) {
		_, err := svc.GenerateToken(uuid.Nil, false)
		assert.ErrorIs(t, err, ErrMissingCustomerID)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	t.Run("round trips the claims", func(t *testing.T) {
		customerID := uuid.New()
		token, err := svc.GenerateToken(customerID, true)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token.Token)
		require.NoError(t, err)
		assert.True(t, claims.Anonymous)

		parsed, err := claims.CustomerUUID()
		require.NoError(t, err)
		assert.Equal(t, customerID, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestJWTService(-time.Minute)
		token, err := expired.GenerateToken(uuid.New(), false)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-that-is-also-long-456",
			TokenExpiration: time.Hour,
			Issuer:          "storefront-test",
		})
		token, err := other.GenerateToken(uuid.New(), false)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
