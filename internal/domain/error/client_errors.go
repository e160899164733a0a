// Package error defines domain-specific errors for the Transfer Desk application.
package error

import "errors"

// Client domain errors.
var (
	// ErrClientNotFound is returned when a client is not found in the system.
	ErrClientNotFound = errors.New("client not found")

	// ErrClientNameRequired is returned when the client name is empty.
	ErrClientNameRequired = errors.New("client name is required")

	// ErrClientNameTooLong is returned when the client name exceeds the maximum length.
	ErrClientNameTooLong = errors.New("client name too long")

	// ErrClientNameExists is returned when another active client already uses the name.
	ErrClientNameExists = errors.New("a client with this name already exists")
)

// ClientErrorCode defines error codes for client errors.
// Format: CLI-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeClientNameRequired ClientErrorCode = "CLI-010001"
	ErrCodeClientNameTooLong  ClientErrorCode = "CLI-010002"
	ErrCodeClientNameExists   ClientErrorCode = "CLI-010003"

	// Lookup errors (02XXXX)
	ErrCodeClientNotFound ClientErrorCode = "CLI-020001"
)

// ClientError is a client failure with a stable code.
type ClientError struct {
	coded[ClientErrorCode]
}

// NewClientError creates a new ClientError with the given code and message.
func NewClientError(code ClientErrorCode, message string, err error) *ClientError {
	return &ClientError{coded[ClientErrorCode]{Code: code, Message: message, Err: err}}
}
