// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// DailyBalanceRepository defines the interface for cash-position persistence operations.
type DailyBalanceRepository interface {
	// FindByDate retrieves the entries of one date in creation order.
	FindByDate(ctx context.Context, date valueobject.CalendarDate) ([]*entity.DailyBalance, error)

	// FindByID retrieves an entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DailyBalance, error)

	// Upsert inserts the entry or updates the amount of the existing (date, name) entry.
	Upsert(ctx context.Context, balance *entity.DailyBalance) error

	// ExistsByDateAndName checks whether another entry of the date already uses name.
	ExistsByDateAndName(ctx context.Context, date valueobject.CalendarDate, name string, excludeID uuid.UUID) (bool, error)

	// Update updates an existing entry.
	Update(ctx context.Context, balance *entity.DailyBalance) error
}
