package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// ListClientTransactionsInput represents the input for listing a client's history.
type ListClientTransactionsInput struct {
	ClientID uuid.UUID
}

// ListClientTransactionsOutput holds the history grouped by date, newest first.
type ListClientTransactionsOutput struct {
	Client *entity.Client
	Groups []entity.TransactionsByDate
}

// ListClientTransactionsUseCase handles client history retrieval.
type ListClientTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clientRepo      adapter.ClientRepository
}

// NewListClientTransactionsUseCase creates a new ListClientTransactionsUseCase instance.
func NewListClientTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	clientRepo adapter.ClientRepository,
) *ListClientTransactionsUseCase {
	return &ListClientTransactionsUseCase{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
	}
}

// Execute lists the client's transactions.
func (uc *ListClientTransactionsUseCase) Execute(ctx context.Context, input ListClientTransactionsInput) (*ListClientTransactionsOutput, error) {
	client, err := findActiveClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByClient(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	joined := make([]*entity.TransactionWithClient, 0, len(transactions))
	for _, tx := range transactions {
		joined = append(joined, &entity.TransactionWithClient{Transaction: tx, Client: client})
	}

	return &ListClientTransactionsOutput{
		Client: client,
		Groups: balance.GroupByDate(joined),
	}, nil
}
