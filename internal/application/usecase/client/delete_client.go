package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
)

// DeleteClientInput represents the input for client deletion.
type DeleteClientInput struct {
	ClientID uuid.UUID
}

// DeleteClientUseCase soft-deletes a client. Its transactions are kept but
// drop out of every summary.
type DeleteClientUseCase struct {
	clientRepo   adapter.ClientRepository
	summaryCache adapter.SummaryCache
}

// NewDeleteClientUseCase creates a new DeleteClientUseCase instance.
func NewDeleteClientUseCase(clientRepo adapter.ClientRepository, summaryCache adapter.SummaryCache) *DeleteClientUseCase {
	return &DeleteClientUseCase{clientRepo: clientRepo, summaryCache: summaryCache}
}

// Execute performs the soft delete.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, input DeleteClientInput) error {
	client, err := findClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return err
	}

	client.SoftDelete(time.Now().UTC())
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	invalidateSummaries(ctx, uc.summaryCache)

	slog.Info("Client deleted", "client_id", client.ID)
	return nil
}
