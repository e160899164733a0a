package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// RecordPaymentInput represents the input for recording a client payment.
type RecordPaymentInput struct {
	ClientID      uuid.UUID
	Date          valueobject.CalendarDate // Zero means today
	AmountPaid    decimal.Decimal
	PaymentMethod string // Empty defaults to CASH
	Description   string
	ReceiverName  string
	CreatedBy     *uuid.UUID
}

// RecordPaymentOutput represents the output of recording a payment.
// Summary is the client's balance at today, including the new payment.
type RecordPaymentOutput struct {
	Transaction *TransactionOutput
	Summary     *entity.ClientSummary
}

// RecordPaymentUseCase handles payment transaction logic.
type RecordPaymentUseCase struct {
	transactionRepo adapter.TransactionRepository
	clientRepo      adapter.ClientRepository
	summaryCache    adapter.SummaryCache
	clock           adapter.Clock
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	transactionRepo adapter.TransactionRepository,
	clientRepo adapter.ClientRepository,
	summaryCache adapter.SummaryCache,
	clock adapter.Clock,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		summaryCache:    summaryCache,
		clock:           clock,
	}
}

// Execute records the payment.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if !input.AmountPaid.IsPositive() {
		return nil, amountError("amount paid must be greater than zero")
	}

	method, err := parsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	client, err := findActiveClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	date := input.Date
	if date.IsZero() {
		date = today
	}

	transaction := entity.NewPaymentTransaction(
		client.ID,
		date,
		input.AmountPaid,
		method,
		description,
		strings.TrimSpace(input.ReceiverName),
		input.CreatedBy,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	invalidateSummaries(ctx, uc.summaryCache)

	history, err := uc.transactionRepo.FindByClient(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client transactions: %w", err)
	}

	summary, err := balance.ComputeClientSummary(client, history, today)
	if err != nil {
		return nil, fmt.Errorf("failed to compute client summary: %w", err)
	}

	slog.Info("Payment recorded",
		"transaction_id", transaction.ID,
		"client_id", client.ID,
		"method", string(method),
		"total_debt", summary.TotalDebt.String(),
	)

	return &RecordPaymentOutput{
		Transaction: toOutput(transaction),
		Summary:     summary,
	}, nil
}

func parsePaymentMethod(s string) (entity.PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return entity.PaymentMethodCash, nil
	}

	method := entity.PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !method.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be 'CASH' or 'MOBILE_MONEY'",
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	return method, nil
}
