package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fabiansimon/Frello/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Expertise string    `json:"expertise"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Email     string `json:"email" binding:"required,email"`
	Expertise string `json:"expertise"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest changes only the fields that are sent
type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1"`
	Role      *string `json:"role"`
	Expertise *string `json:"expertise"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Expertise: user.Expertise,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}
