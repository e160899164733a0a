// Package error defines domain-specific errors for the Transfer Desk application.
package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Balance aggregation errors.
var (
	// ErrMalformedRecord is returned when a transaction handed to the aggregator
	// is missing a required field or carries an invalid amount.
	ErrMalformedRecord = errors.New("malformed transaction record")

	// ErrUnknownClientReference marks a transaction whose client cannot be resolved.
	// The aggregator recovers from it by excluding the record.
	ErrUnknownClientReference = errors.New("unknown client reference")

	// ErrInvalidDateRange is returned when a window starts after it ends.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// BalanceErrorCode defines error codes for aggregation errors.
type BalanceErrorCode string

const (
	ErrCodeMalformedRecord  BalanceErrorCode = "BAL-010001"
	ErrCodeInvalidDateRange BalanceErrorCode = "BAL-010002"
	ErrCodeInvalidDate      BalanceErrorCode = "BAL-010003"
)

// MalformedRecordError identifies the offending transaction and field.
type MalformedRecordError struct {
	TransactionID uuid.UUID
	Field         string
	Reason        string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s %s: %s %s", ErrMalformedRecord.Error(), e.TransactionID, e.Field, e.Reason)
}

// Unwrap returns ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Code returns the API error code.
func (e *MalformedRecordError) Code() BalanceErrorCode {
	return ErrCodeMalformedRecord
}

// NewMalformedRecordError creates a MalformedRecordError.
func NewMalformedRecordError(id uuid.UUID, field, reason string) *MalformedRecordError {
	return &MalformedRecordError{
		TransactionID: id,
		Field:         field,
		Reason:        reason,
	}
}

// BalanceError is a balance failure with a stable code.
type BalanceError struct {
	coded[BalanceErrorCode]
}

// NewBalanceError creates a new BalanceError with the given code and message.
func NewBalanceError(code BalanceErrorCode, message string, err error) *BalanceError {
	return &BalanceError{coded[BalanceErrorCode]{Code: code, Message: message, Err: err}}
}
