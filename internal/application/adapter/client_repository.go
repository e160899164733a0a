// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/domain/entity"
)

// ClientRepository defines the interface for client persistence operations.
type ClientRepository interface {
	// Create creates a new client in the database.
	Create(ctx context.Context, client *entity.Client) error

	// FindByID retrieves a client by its ID, including soft-deleted clients.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)

	// ListActive retrieves all active clients ordered by name.
	ListActive(ctx context.Context) ([]*entity.Client, error)

	// Search retrieves active clients whose name contains term, ordered by name.
	Search(ctx context.Context, term string, limit int) ([]*entity.Client, error)

	// ExistsActiveByName checks, case-insensitively, whether an active client
	// already uses name. excludeID skips one client (for renames).
	ExistsActiveByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// Update persists name and status changes.
	Update(ctx context.Context, client *entity.Client) error
}
