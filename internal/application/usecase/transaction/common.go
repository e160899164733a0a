// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// TransactionOutput represents a transaction in use case outputs.
type TransactionOutput struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	Date          valueobject.CalendarDate
	AmountSent    decimal.Decimal
	AmountToPay   decimal.Decimal
	AmountPaid    decimal.Decimal
	Description   string
	PaymentMethod *entity.PaymentMethod
	ReceiverName  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toOutput(tx *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:            tx.ID,
		ClientID:      tx.ClientID,
		Date:          tx.Date,
		AmountSent:    tx.AmountSent,
		AmountToPay:   tx.AmountToPay,
		AmountPaid:    tx.AmountPaid,
		Description:   tx.Description,
		PaymentMethod: tx.PaymentMethod,
		ReceiverName:  tx.ReceiverName,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

// findActiveClient loads the client a new transaction is recorded against.
func findActiveClient(ctx context.Context, clientRepo adapter.ClientRepository, clientID uuid.UUID) (*entity.Client, error) {
	client, err := clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	if !client.Status.IsActive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnClientNotActive,
			"client has been deleted",
			domainerror.ErrClientNotActive,
		)
	}

	return client, nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

func amountError(message string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionAmount,
		message,
		domainerror.ErrInvalidTransactionAmount,
	)
}

// invalidateSummaries drops cached summaries after a write. A cache failure
// does not fail the write.
func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache) {
	if err := cache.InvalidateAll(ctx); err != nil {
		slog.Warn("Failed to invalidate summary cache", "error", err)
	}
}
