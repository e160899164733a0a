package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// CreateClientInput represents the input for client creation.
type CreateClientInput struct {
	Name      string
	CreatedBy *uuid.UUID
}

// CreateClientOutput represents the output of client creation.
type CreateClientOutput struct {
	Client *entity.Client
}

// CreateClientUseCase handles client creation logic.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{clientRepo: clientRepo}
}

// Execute performs the client creation.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*CreateClientOutput, error) {
	name, err := normalizeName(ctx, uc.clientRepo, input.Name, nil)
	if err != nil {
		return nil, err
	}

	client := entity.NewClient(name, input.CreatedBy)
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	slog.Info("Client created", "client_id", client.ID, "name", client.Name)

	return &CreateClientOutput{Client: client}, nil
}
