package services

import (
	"errors"
	"strings"

	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService управляет учетными записями. Аутентификация живет во внешнем сервисе,
// здесь только запись пользователя и его тип.
type UserService interface {
	CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	Deactivate(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) CreateUser(db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	userType := models.UserType(req.UserType)
	if !userType.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"user_type": "must be one of: startup, investor"})
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		UserType:  userType,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, handleUserError(err)
	}

	logger.CtxInfo(contextOf(db), "User created", "user_id", user.ID, "user_type", user.UserType)
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

// Deactivate убирает пользователя из лент; свайпы и матчи остаются в истории
func (s *UserServiceImpl) Deactivate(db *gorm.DB, userID string) error {
	if err := s.userRepo.SetActive(db, userID, false); err != nil {
		return handleUserError(err)
	}
	logger.CtxInfo(contextOf(db), "User deactivated", "user_id", userID)
	return nil
}

func handleUserError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.InternalError(err)
}
