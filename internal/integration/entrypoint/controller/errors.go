// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// handleDomainError maps coded domain errors to HTTP responses.
// Anything without a code is reported as a generic server error.
func handleDomainError(ctx *gin.Context, err error) {
	var (
		authErr      *domainerror.AuthError
		txnErr       *domainerror.TransactionError
		clientErr    *domainerror.ClientError
		userErr      *domainerror.UserError
		balanceErr   *domainerror.DailyBalanceError
		exportErr    *domainerror.ExportError
		queryErr     *domainerror.BalanceError
		malformedErr *domainerror.MalformedRecordError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, statusForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &txnErr):
		writeError(ctx, statusForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code))
	case errors.As(err, &clientErr):
		writeError(ctx, statusForClientError(clientErr.Code), clientErr.Message, string(clientErr.Code))
	case errors.As(err, &userErr):
		writeError(ctx, statusForUserError(userErr.Code), userErr.Message, string(userErr.Code))
	case errors.As(err, &balanceErr):
		writeError(ctx, statusForDailyBalanceError(balanceErr.Code), balanceErr.Message, string(balanceErr.Code))
	case errors.As(err, &exportErr):
		writeError(ctx, statusForExportError(exportErr.Code), exportErr.Message, string(exportErr.Code))
	case errors.As(err, &queryErr):
		writeError(ctx, http.StatusBadRequest, queryErr.Message, string(queryErr.Code))
	case errors.As(err, &malformedErr):
		slog.Error("Malformed transaction record",
			"transaction_id", malformedErr.TransactionID,
			"field", malformedErr.Field,
			"reason", malformedErr.Reason,
		)
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "A stored transaction is malformed",
			Code:    string(malformedErr.Code()),
			Details: malformedErr.Error(),
		})
	default:
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// invalidBody responds to a request body that failed to bind.
func invalidBody(ctx *gin.Context, err error, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body: " + err.Error(),
		Code:  code,
	})
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeAccountDisabled:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTxnClientNotActive:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForClientError(code domainerror.ClientErrorCode) int {
	switch code {
	case domainerror.ErrCodeClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeClientNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeClientNameRequired,
		domainerror.ErrCodeClientNameTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAdminRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeUserEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidPhoneNumber,
		domainerror.ErrCodePasswordMismatch,
		domainerror.ErrCodeUserWeakPassword,
		domainerror.ErrCodeUserInvalidEmail,
		domainerror.ErrCodeCannotModifySelf:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForDailyBalanceError(code domainerror.DailyBalanceErrorCode) int {
	switch code {
	case domainerror.ErrCodeDailyBalanceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDailyBalanceNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeDailyBalanceNameRequired,
		domainerror.ErrCodeDailyBalanceInvalidDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForExportError(code domainerror.ExportErrorCode) int {
	switch code {
	case domainerror.ErrCodeExportPasswordMismatch:
		return http.StatusForbidden
	case domainerror.ErrCodeNoTransactionsInRange:
		return http.StatusNotFound
	case domainerror.ErrCodeExportNotConfigured:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeUnsupportedFormat,
		domainerror.ErrCodeInvalidExportRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
