// Package error defines domain-specific errors for the Transfer Desk application.
package error

import "errors"

// User management errors.
var (
	// ErrAdminRequired is returned when a non-admin calls an admin operation.
	ErrAdminRequired = errors.New("administrator access required")

	// ErrInvalidPhoneNumber is returned when the phone number format is invalid.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrCannotModifySelf is returned when an admin blocks or deactivates their own account.
	ErrCannotModifySelf = errors.New("cannot block or deactivate your own account")
)

// UserErrorCode defines error codes for user management errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPhoneNumber UserErrorCode = "USR-010001"
	ErrCodePasswordMismatch   UserErrorCode = "USR-010002"
	ErrCodeUserWeakPassword   UserErrorCode = "USR-010003"
	ErrCodeUserInvalidEmail   UserErrorCode = "USR-010004"
	ErrCodeUserEmailExists    UserErrorCode = "USR-010005"
	ErrCodeCannotModifySelf   UserErrorCode = "USR-010006"

	// Access errors (02XXXX)
	ErrCodeAdminRequired UserErrorCode = "USR-020001"
	ErrCodeUserNotFound  UserErrorCode = "USR-020002"
)

// UserError is a user management failure with a stable code.
type UserError struct {
	coded[UserErrorCode]
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{coded[UserErrorCode]{Code: code, Message: message, Err: err}}
}
