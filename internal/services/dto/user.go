package dto

import (
	"time"

	"dealflow_backend/internal/models"
)

// =======================
// User DTOs
// =======================

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	UserType  string `json:"user_type" validate:"required,is-user-type"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// UserResponse используется для /users/me и вложенных ответов
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email,omitempty"`
	UserType  models.UserType `json:"user_type"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		UserType:  u.UserType,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
