package auth

import (
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *identity.User {
	return &identity.User{
		ID:    uuid.New(),
		Email: "ana@example.com.br",
		Name:  "Ana",
		Role:  identity.RoleSuperAdmin,
	}
}

func TestJWTService(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-unit-tests!!", time.Hour, "billing-backend")

	t.Run("round trips claims", func(t *testing.T) {
		user := testUser()
		token, expiresAt, err := svc.GenerateToken(user)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.ID.String(), claims.Subject)
		assert.Equal(t, "ana@example.com.br", claims.Email)
		assert.Equal(t, "Ana", claims.Name)
		assert.Equal(t, "super_admin", claims.Role)
		assert.Equal(t, "billing-backend", claims.Issuer)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService("a-completely-different-secret-key", time.Hour, "billing-backend")
		token, _, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret-key-for-unit-tests!!", -time.Minute, "billing-backend")
		token, _, err := expired.GenerateToken(testUser())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
