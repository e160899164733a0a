package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Date          *valueobject.CalendarDate
	AmountSent    *decimal.Decimal
	AmountToPay   *decimal.Decimal
	AmountPaid    *decimal.Decimal
	Description   *string
	ReceiverName  *string
	PaymentMethod *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic. Last write wins.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"date must not be empty",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		transaction.Date = *input.Date
	}

	for _, change := range []struct {
		value *decimal.Decimal
		field *decimal.Decimal
		name  string
	}{
		{input.AmountSent, &transaction.AmountSent, "amount sent"},
		{input.AmountToPay, &transaction.AmountToPay, "amount to pay"},
		{input.AmountPaid, &transaction.AmountPaid, "amount paid"},
	} {
		if change.value == nil {
			continue
		}
		if change.value.IsNegative() {
			return nil, amountError(change.name + " must not be negative")
		}
		*change.field = *change.value
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		transaction.Description = description
	}

	if input.PaymentMethod != nil {
		method, err := parsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			return nil, err
		}
		transaction.PaymentMethod = &method
	}

	if input.ReceiverName != nil {
		transaction.ReceiverName = strings.TrimSpace(*input.ReceiverName)
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	invalidateSummaries(ctx, uc.summaryCache)

	slog.Info("Transaction updated", "transaction_id", transaction.ID)

	return &UpdateTransactionOutput{Transaction: toOutput(transaction)}, nil
}
