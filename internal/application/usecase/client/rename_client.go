package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// RenameClientInput represents the input for renaming a client.
type RenameClientInput struct {
	ClientID uuid.UUID
	Name     string
}

// RenameClientOutput represents the output of renaming a client.
type RenameClientOutput struct {
	Client *entity.Client
}

// RenameClientUseCase handles client renaming. Summaries carry the name, so the cache is dropped.
type RenameClientUseCase struct {
	clientRepo   adapter.ClientRepository
	summaryCache adapter.SummaryCache
}

// NewRenameClientUseCase creates a new RenameClientUseCase instance.
func NewRenameClientUseCase(clientRepo adapter.ClientRepository, summaryCache adapter.SummaryCache) *RenameClientUseCase {
	return &RenameClientUseCase{clientRepo: clientRepo, summaryCache: summaryCache}
}

// Execute performs the rename.
func (uc *RenameClientUseCase) Execute(ctx context.Context, input RenameClientInput) (*RenameClientOutput, error) {
	client, err := findClient(ctx, uc.clientRepo, input.ClientID)
	if err != nil {
		return nil, err
	}

	name, err := normalizeName(ctx, uc.clientRepo, input.Name, &client.ID)
	if err != nil {
		return nil, err
	}

	client.Rename(name)
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	invalidateSummaries(ctx, uc.summaryCache)

	return &RenameClientOutput{Client: client}, nil
}
