package auth

import (
	"testing"
	"time"

	"dealflow_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Generate("user-1", models.UserTypeInvestor)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserTypeInvestor, claims.UserType)
}

func TestTokenManager_Rejects(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewTokenManager("other", time.Hour)
		token, err := other.Generate("user-1", models.UserTypeStartup)
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := m.Generate("user-1", models.UserTypeStartup)
		require.NoError(t, err)

		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user type", func(t *testing.T) {
		claims := Claims{
			UserID:   "user-1",
			UserType: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.ErrorIs(t, err, ErrEmptySecret)
	})
}
