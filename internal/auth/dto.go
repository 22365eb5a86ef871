// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/cryptopay-app/api/internal/middleware"
)

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	PhonePrefix     string `json:"phone_prefix" validate:"required,max=5"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=20"`
}

// LoginRequest deliberately skips email-format validation: the same field
// accepts a display name as a fallback identifier.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type IdentityResponse struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Role    string `json:"role"`
}

func ToIdentityResponse(identity *middleware.Identity) IdentityResponse {
	return IdentityResponse{
		UserID:  identity.UserID,
		Name:    identity.Name,
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin,
		Role:    identity.Role,
	}
}
