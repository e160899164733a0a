// Package error defines domain-specific errors for the Transfer Desk application.
package error

import "errors"

// Daily balance domain errors.
var (
	// ErrDailyBalanceNotFound is returned when a daily balance entry does not exist.
	ErrDailyBalanceNotFound = errors.New("daily balance not found")

	// ErrDailyBalanceNameRequired is returned when the position name is empty.
	ErrDailyBalanceNameRequired = errors.New("balance name is required")

	// ErrDailyBalanceNameExists is returned when renaming onto a name already used that day.
	ErrDailyBalanceNameExists = errors.New("balance name already used for this date")
)

// DailyBalanceErrorCode defines error codes for daily balance errors.
type DailyBalanceErrorCode string

const (
	ErrCodeDailyBalanceNameRequired DailyBalanceErrorCode = "DBL-010001"
	ErrCodeDailyBalanceInvalidDate  DailyBalanceErrorCode = "DBL-010002"
	ErrCodeDailyBalanceNameExists   DailyBalanceErrorCode = "DBL-010003"
	ErrCodeDailyBalanceNotFound     DailyBalanceErrorCode = "DBL-020001"
)

// DailyBalanceError is a daily balance failure with a stable code.
type DailyBalanceError struct {
	coded[DailyBalanceErrorCode]
}

// NewDailyBalanceError creates a new DailyBalanceError with the given code and message.
func NewDailyBalanceError(code DailyBalanceErrorCode, message string, err error) *DailyBalanceError {
	return &DailyBalanceError{coded[DailyBalanceErrorCode]{Code: code, Message: message, Err: err}}
}
