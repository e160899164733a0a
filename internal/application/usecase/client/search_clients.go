package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// SearchClientsInput represents the input for client search. An empty term lists every active client.
type SearchClientsInput struct {
	Term string
}

// SearchClientsOutput represents the output of client search.
type SearchClientsOutput struct {
	Clients []*entity.Client
}

// SearchClientsUseCase handles client lookup for the entry forms.
type SearchClientsUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewSearchClientsUseCase creates a new SearchClientsUseCase instance.
func NewSearchClientsUseCase(clientRepo adapter.ClientRepository) *SearchClientsUseCase {
	return &SearchClientsUseCase{clientRepo: clientRepo}
}

// Execute performs the search.
func (uc *SearchClientsUseCase) Execute(ctx context.Context, input SearchClientsInput) (*SearchClientsOutput, error) {
	term := strings.TrimSpace(input.Term)

	var (
		clients []*entity.Client
		err     error
	)
	if term == "" {
		clients, err = uc.clientRepo.ListActive(ctx)
	} else {
		clients, err = uc.clientRepo.Search(ctx, term, SearchLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	return &SearchClientsOutput{Clients: clients}, nil
}
