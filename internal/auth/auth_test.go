package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/model"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)
		assert.True(t, CheckPassword(hash, "s3cret-password"))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")
		require.NoError(t, err)
		assert.False(t, CheckPassword(hash, "not-the-password"))
	})
}

func TestTokenService(t *testing.T) {
	svc := NewTokenService("test-signing-key", time.Hour)

	t.Run("issue and verify", func(t *testing.T) {
		token, err := svc.Issue("user-1", model.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewTokenService("different-key", time.Hour)
		token, err := other.Issue("user-1", model.RoleUser)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("test-signing-key", -time.Minute)
		token, err := expired.Issue("user-1", model.RoleUser)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
