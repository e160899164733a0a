package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// DailyBalanceModel represents the daily_balances table in the database.
type DailyBalanceModel struct {
	ID        uuid.UUID                `gorm:"type:uuid;primaryKey"`
	Date      valueobject.CalendarDate `gorm:"type:date;not null;uniqueIndex:idx_daily_balances_date_name"`
	Name      string                   `gorm:"type:varchar(100);not null;uniqueIndex:idx_daily_balances_date_name"`
	Amount    decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	CreatedAt time.Time                `gorm:"not null"`
	UpdatedAt time.Time                `gorm:"not null"`
}

// TableName returns the table name for the DailyBalanceModel.
func (DailyBalanceModel) TableName() string {
	return "daily_balances"
}

// ToEntity converts a DailyBalanceModel to a domain DailyBalance entity.
func (m *DailyBalanceModel) ToEntity() *entity.DailyBalance {
	return &entity.DailyBalance{
		ID:        m.ID,
		Date:      m.Date,
		Name:      m.Name,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// DailyBalanceFromEntity creates a DailyBalanceModel from a domain DailyBalance entity.
func DailyBalanceFromEntity(balance *entity.DailyBalance) *DailyBalanceModel {
	return &DailyBalanceModel{
		ID:        balance.ID,
		Date:      balance.Date,
		Name:      balance.Name,
		Amount:    balance.Amount,
		CreatedAt: balance.CreatedAt,
		UpdatedAt: balance.UpdatedAt,
	}
}
