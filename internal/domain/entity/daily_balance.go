// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// DefaultBalanceNames are the cash positions every date is expected to carry.
var DefaultBalanceNames = []string{
	"SOLDE GLOBAL CASH",
	"ESPÈCE DISPONIBLE",
	"SOLDE YAWI ASH",
	"MR BALDE ET MR ALPHA DOIT",
	"SOLDE LPV",
	"MD NOUS DOIT",
	"SOLDE AIRTEL MONEY",
	"NOUS DEVONS MD",
}

// DailyBalance is a named cash-position entry for one calendar date.
type DailyBalance struct {
	ID        uuid.UUID
	Date      valueobject.CalendarDate
	Name      string
	Amount    decimal.Decimal // Positions may be negative
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDailyBalance creates a new DailyBalance.
func NewDailyBalance(date valueobject.CalendarDate, name string, amount decimal.Decimal) *DailyBalance {
	now := time.Now().UTC()
	return &DailyBalance{
		ID:        uuid.New(),
		Date:      date,
		Name:      name,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPersisted reports whether the entry exists in storage (placeholders have a nil ID).
func (b *DailyBalance) IsPersisted() bool {
	return b.ID != uuid.Nil
}
