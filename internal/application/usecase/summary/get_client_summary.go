package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// GetClientSummaryInput represents the input for one client's live balance.
type GetClientSummaryInput struct {
	ClientID uuid.UUID
	Date     valueobject.CalendarDate // Zero means today
}

// GetClientSummaryOutput represents one client's balance.
type GetClientSummaryOutput struct {
	Date    valueobject.CalendarDate
	Summary *entity.ClientSummary
}

// GetClientSummaryUseCase computes one client's balance, as shown beside the payment form.
type GetClientSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clientRepo      adapter.ClientRepository
	clock           adapter.Clock
}

// NewGetClientSummaryUseCase creates a new GetClientSummaryUseCase instance.
func NewGetClientSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	clientRepo adapter.ClientRepository,
	clock adapter.Clock,
) *GetClientSummaryUseCase {
	return &GetClientSummaryUseCase{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
		clock:           clock,
	}
}

// Execute computes the client's balance.
func (uc *GetClientSummaryUseCase) Execute(ctx context.Context, input GetClientSummaryInput) (*GetClientSummaryOutput, error) {
	client, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, domainerror.NewClientError(
				domainerror.ErrCodeClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	date := input.Date
	if date.IsZero() {
		date = uc.clock.Today()
	}

	transactions, err := uc.transactionRepo.FindByClient(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary, err := balance.ComputeClientSummary(client, transactions, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute client summary: %w", err)
	}

	return &GetClientSummaryOutput{Date: date, Summary: summary}, nil
}
