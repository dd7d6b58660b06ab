package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,min=3,max=20"`
	Password        string `json:"password" binding:"required,min=6,max=24"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,min=6,max=24"`
}

// LoginRequest represents the login request; Username also accepts an email
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6,max=24"`
}

// UpdateProfileRequest carries the profile fields to change. Empty fields are
// left untouched; the profile image travels as a multipart file, not here.
type UpdateProfileRequest struct {
	Name     string `form:"name" binding:"omitempty,min=3"`
	Username string `form:"username" binding:"omitempty,min=3,max=20"`
}

// UserMutationResponse wraps an updated user profile
type UserMutationResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// UserResponse represents the public view of a user
type UserResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse wraps a logged-in or registered user with its access token
type AuthResponse struct {
	Message     string        `json:"message"`
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"accessToken,omitempty"`
}
