package dto

import (
	"github.com/transfer-desk/backend/internal/application/usecase/user"
)

// CreateUserRequest represents the request body for operator account creation.
type CreateUserRequest struct {
	Email           string `json:"email" binding:"required"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	IsAdmin         bool   `json:"is_admin"`
}

// UpdateUserRequest represents the request body for operator account update.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Email           *string `json:"email,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
	IsAdmin         *bool   `json:"is_admin,omitempty"`
}

// UserResponse represents an operator account in API responses.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
	IsActive    bool   `json:"is_active"`
	Blocked     bool   `json:"blocked"`
}

// UserListResponse represents the response for listing operator accounts.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a UserOutput to a UserResponse DTO.
func ToUserResponse(output *user.UserOutput) UserResponse {
	return UserResponse{
		ID:          output.ID.String(),
		Email:       output.Email,
		PhoneNumber: output.PhoneNumber,
		IsAdmin:     output.IsAdmin,
		IsActive:    output.IsActive,
		Blocked:     output.Blocked,
	}
}

// ToUserListResponse converts a list of UserOutput to a UserListResponse DTO.
func ToUserListResponse(outputs []*user.UserOutput) UserListResponse {
	users := make([]UserResponse, 0, len(outputs))
	for _, output := range outputs {
		users = append(users, ToUserResponse(output))
	}
	return UserListResponse{Users: users}
}
