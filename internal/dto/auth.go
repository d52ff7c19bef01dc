package dto

import (
	"time"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type RegisterRequestDTO struct {
	Email       string  `json:"email" validate:"required,email" example:"user@example.com"`
	Password    string  `json:"password" validate:"required,min=8" example:"password123"`
	FullName    string  `json:"full_name" validate:"required,min=2" example:"Jane Doe"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=6,max=20" example:"081234567890"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"password123"`
}

type UserDTO struct {
	ID          int       `json:"id" example:"1"`
	Email       string    `json:"email" example:"user@example.com"`
	FullName    string    `json:"full_name" example:"Jane Doe"`
	PhoneNumber *string   `json:"phone_number" example:"081234567890"`
	Role        string    `json:"role" example:"user"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserDTO(user domain.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

type AuthResponseDTO struct {
	User      UserDTO `json:"user"`
	SessionID string  `json:"session_id"`
}

type LogoutResponseDTO struct {
	Success bool `json:"success" example:"true"`
}
