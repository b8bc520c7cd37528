package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse is returned on successful registration and login
type AuthResponse struct {
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expires_in"`
	User      UserDTO `json:"user"`
}

// VerifyResponse is returned by the token verification endpoint
type VerifyResponse struct {
	Valid bool    `json:"valid"`
	User  UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
