package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// RecordSendInput represents the input for recording funds sent for a client.
type RecordSendInput struct {
	ClientID     uuid.UUID
	Date         valueobject.CalendarDate // Zero means today
	AmountSent   decimal.Decimal
	AmountToPay  decimal.Decimal
	Description  string
	ReceiverName string
	CreatedBy    *uuid.UUID
}

// RecordSendOutput represents the output of recording a send.
type RecordSendOutput struct {
	Transaction *TransactionOutput
}

// RecordSendUseCase handles send transaction logic.
type RecordSendUseCase struct {
	transactionRepo adapter.TransactionRepository
	clientRepo      adapter.ClientRepository
	summaryCache    adapter.SummaryCache
	clock           adapter.Clock
}

// NewRecordSendUseCase creates a new RecordSendUseCase instance.
func NewRecordSendUseCase(
	transactionRepo adapter.TransactionRepository,
	clientRepo adapter.ClientRepository,
	summaryCache adapter.SummaryCache,
	clock adapter.Clock,
) *RecordSendUseCase {
	return &RecordSendUseCase{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		summaryCache:    summaryCache,
		clock:           clock,
	}
}

// Execute records the send.
func (uc *RecordSendUseCase) Execute(ctx context.Context, input RecordSendInput) (*RecordSendOutput, error) {
	if !input.AmountSent.IsPositive() {
		return nil, amountError("amount sent must be greater than zero")
	}
	if input.AmountToPay.IsNegative() {
		return nil, amountError("amount to pay must not be negative")
	}

	description := strings.TrimSpace(input.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	client, err := findActiveClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = uc.clock.Today()
	}

	transaction := entity.NewSendTransaction(
		client.ID,
		date,
		input.AmountSent,
		input.AmountToPay,
		description,
		strings.TrimSpace(input.ReceiverName),
		input.CreatedBy,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	invalidateSummaries(ctx, uc.summaryCache)

	slog.Info("Send recorded",
		"transaction_id", transaction.ID,
		"client_id", client.ID,
		"date", date.String(),
		"amount_to_pay", transaction.AmountToPay.String(),
	)

	return &RecordSendOutput{Transaction: toOutput(transaction)}, nil
}
