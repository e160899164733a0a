// Package error defines domain-specific errors for the Transfer Desk application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when a transaction amount is negative or missing.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidPaymentMethod is returned when the payment method is not CASH or MOBILE_MONEY.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrClientNotActive is returned when recording against a deleted client.
	ErrClientNotActive = errors.New("client is not active")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidPaymentMethod     TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010005"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnClientNotFound   TransactionErrorCode = "TXN-020002"
	ErrCodeTxnClientNotActive  TransactionErrorCode = "TXN-020003"
)

// TransactionError is a transaction failure with a stable code.
type TransactionError struct {
	coded[TransactionErrorCode]
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{coded[TransactionErrorCode]{Code: code, Message: message, Err: err}}
}
