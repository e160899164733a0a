// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/transfer-desk/backend/internal/application/usecase/auth"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionRequest names the session to rotate or end. It is the body of
// both /auth/refresh and /auth/logout.
type SessionRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SessionResponse carries a freshly issued token pair. Login also embeds
// the signed-in operator.
type SessionResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *UserResponse `json:"user,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToSessionResponse maps a login result.
func ToSessionResponse(out *auth.LoginUserOutput) SessionResponse {
	user := ToUserResponseFromEntity(out.User)
	return SessionResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         &user,
	}
}

// ToUserResponseFromEntity converts a domain AppUser entity to a UserResponse DTO.
func ToUserResponseFromEntity(user *entity.AppUser) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		IsAdmin:     user.IsAdmin,
		IsActive:    user.IsActive,
		Blocked:     user.Blocked,
	}
}
