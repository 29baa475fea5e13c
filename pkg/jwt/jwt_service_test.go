package jwt

import (
	"Foodgram-Backend/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService(t *testing.T) {
	svc := NewJWTServiceWithSecret("test-secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateTokenUser("c9f4a7c2-1111-4d8e-9e4b-5d1c3b2a0f00", domain.RoleUser)
		require.NoError(t, err)

		userID, role, err := svc.GetUserIDByToken(token)
		require.NoError(t, err)
		assert.Equal(t, "c9f4a7c2-1111-4d8e-9e4b-5d1c3b2a0f00", userID)
		assert.Equal(t, domain.RoleUser, role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTServiceWithSecret("other").GenerateTokenUser("u", domain.RoleUser)
		require.NoError(t, err)

		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		old := &jwtService{
			secretKey: "test-secret",
			issuer:    "FOODGRAM",
			now:       func() time.Time { return time.Now().Add(-48 * time.Hour) },
		}
		token, err := old.GenerateTokenUser("u", domain.RoleUser)
		require.NoError(t, err)

		_, _, err = svc.GetUserIDByToken(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.GetUserIDByToken("not.a.token")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}
