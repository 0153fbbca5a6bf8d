package services_test

import (
	"testing"

	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"
	"dealflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc := services.NewUserService(repositories.NewUserRepository())

	user, err := svc.CreateUser(db, &dto.CreateUserRequest{
		Email:     "  Founder@Acme.dev ",
		UserType:  "startup",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "founder@acme.dev", user.Email)
	assert.Equal(t, models.UserTypeStartup, user.UserType)
	assert.True(t, user.IsActive)

	t.Run("email is unique", func(t *testing.T) {
		_, err := svc.CreateUser(db, &dto.CreateUserRequest{Email: "founder@acme.dev", UserType: "investor"})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("user type is validated", func(t *testing.T) {
		_, err := svc.CreateUser(db, &dto.CreateUserRequest{Email: "x@acme.dev", UserType: "admin"})
		assert.Equal(t, apperrors.CodeValidationFailed, appCode(t, err))
	})

	t.Run("deactivate", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(db, user.ID))

		got, err := svc.GetUser(db, user.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		assert.ErrorIs(t, svc.Deactivate(db, "00000000-0000-0000-0000-000000000000"), apperrors.ErrUserNotFound)
	})
}
