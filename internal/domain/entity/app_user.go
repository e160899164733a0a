// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppUser represents an operator account of the back office.
type AppUser struct {
	ID           uuid.UUID
	Email        string
	PhoneNumber  string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAppUser creates a new active, non-admin, unblocked user.
func NewAppUser(email, phoneNumber, passwordHash string) *AppUser {
	now := time.Now().UTC()
	return &AppUser{
		ID:           uuid.New(),
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		IsActive:     true,
		Blocked:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanLogin reports whether the account may authenticate.
func (u *AppUser) CanLogin() bool {
	return u.IsActive && !u.Blocked
}
