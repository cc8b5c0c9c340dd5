package dto

import (
	"time"

	"collabra_backend/internal/models"
)

// RegisterRequest carries everything needed to create an account and its
// role-specific profile in one call.
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required,oneof=company influencer"`

	// Influencer fields
	DisplayName string   `json:"display_name,omitempty" binding:"required_if=Role influencer"`
	Categories  []string `json:"categories,omitempty"`

	// Company fields
	CompanyName   string `json:"company_name,omitempty" binding:"required_if=Role company"`
	ContactPerson string `json:"contact_person,omitempty"`
	Industry      string `json:"industry,omitempty"`

	City string `json:"city,omitempty"`
}

type RegisterResponse struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   models.UserRole   `json:"role"`
	Status models.UserStatus `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserDTO `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type UserDTO struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	Role            models.UserRole   `json:"role"`
	Status          models.UserStatus `json:"status"`
	EmailVerified   bool              `json:"email_verified"`
	Profile         interface{}       `json:"profile,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	EmailVerifiedAt *time.Time        `json:"email_verified_at,omitempty"`
}
