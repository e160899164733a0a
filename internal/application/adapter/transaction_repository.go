// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// ClientTotals represents summed amounts of one client's transactions.
type ClientTotals struct {
	ClientID         uuid.UUID
	ClientName       string
	AmountSent       decimal.Decimal
	AmountToPay      decimal.Decimal
	AmountPaid       decimal.Decimal
	TransactionCount int64
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByClient retrieves every transaction of a client, oldest date first.
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Transaction, error)

	// FindAllWithClients retrieves every transaction joined with its client,
	// excluding soft-deleted clients, newest date first.
	FindAllWithClients(ctx context.Context) ([]*entity.TransactionWithClient, error)

	// FindWithClientsUntil retrieves joined transactions dated on or before end.
	FindWithClientsUntil(ctx context.Context, end valueobject.CalendarDate) ([]*entity.TransactionWithClient, error)

	// FindWithClientsBetween retrieves joined transactions dated inside [from, to].
	FindWithClientsBetween(ctx context.Context, from, to valueobject.CalendarDate) ([]*entity.TransactionWithClient, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ArchiveBefore replaces every transaction dated strictly before cutoff
	// with one row per client built by summarize, atomically. When createdBy is
	// set only clients created by that user are archived. Only the rows that
	// were summed are deleted.
	ArchiveBefore(ctx context.Context, cutoff valueobject.CalendarDate, createdBy *uuid.UUID, summarize ArchiveSummarizer) (*ArchiveResult, error)
}

// ArchiveSummarizer builds the summary transaction replacing one client's
// archived rows.
type ArchiveSummarizer func(totals *ClientTotals) *entity.Transaction

// ArchiveResult reports an archive run. Clients are ordered by name.
type ArchiveResult struct {
	Clients []*ClientTotals
	Deleted int64
}
