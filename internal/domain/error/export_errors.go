// Package error defines domain-specific errors for the Transfer Desk application.
package error

import "errors"

// Export domain errors.
var (
	// ErrExportPasswordMismatch is returned when the export password is wrong.
	ErrExportPasswordMismatch = errors.New("incorrect export password")

	// ErrExportNotConfigured is returned when no export password hash is configured.
	ErrExportNotConfigured = errors.New("export password is not configured")

	// ErrNoTransactionsInRange is returned when the export window holds no transactions.
	ErrNoTransactionsInRange = errors.New("no transactions found for this period")

	// ErrUnsupportedExportFormat is returned for an unknown document format.
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ExportErrorCode defines error codes for export errors.
type ExportErrorCode string

const (
	ErrCodeExportPasswordMismatch ExportErrorCode = "EXP-010001"
	ErrCodeExportNotConfigured    ExportErrorCode = "EXP-010002"
	ErrCodeNoTransactionsInRange  ExportErrorCode = "EXP-010003"
	ErrCodeUnsupportedFormat      ExportErrorCode = "EXP-010004"
	ErrCodeInvalidExportRange     ExportErrorCode = "EXP-010005"
)

// ExportError is an export failure with a stable code.
type ExportError struct {
	coded[ExportErrorCode]
}

// NewExportError creates a new ExportError with the given code and message.
func NewExportError(code ExportErrorCode, message string, err error) *ExportError {
	return &ExportError{coded[ExportErrorCode]{Code: code, Message: message, Err: err}}
}
