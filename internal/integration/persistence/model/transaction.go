package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey"`
	ClientID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Date          valueobject.CalendarDate `gorm:"type:date;not null;index"`
	AmountSent    decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	AmountToPay   decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	AmountPaid    decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	Description   string                   `gorm:"type:varchar(255)"`
	PaymentMethod *string                  `gorm:"type:varchar(20)"`
	ReceiverName  string                   `gorm:"type:varchar(100)"`
	CreatedBy     *uuid.UUID               `gorm:"type:uuid"`
	CreatedAt     time.Time                `gorm:"not null"`
	UpdatedAt     time.Time                `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Client *ClientModel `gorm:"foreignKey:ClientID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var method *entity.PaymentMethod
	if m.PaymentMethod != nil {
		pm := entity.PaymentMethod(*m.PaymentMethod)
		method = &pm
	}

	return &entity.Transaction{
		ID:            m.ID,
		ClientID:      m.ClientID,
		Date:          m.Date,
		AmountSent:    m.AmountSent,
		AmountToPay:   m.AmountToPay,
		AmountPaid:    m.AmountPaid,
		Description:   m.Description,
		PaymentMethod: method,
		ReceiverName:  m.ReceiverName,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToEntityWithClient converts a TransactionModel with its Client to a TransactionWithClient entity.
func (m *TransactionModel) ToEntityWithClient() *entity.TransactionWithClient {
	result := &entity.TransactionWithClient{
		Transaction: m.ToEntity(),
	}

	if m.Client != nil {
		result.Client = m.Client.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var method *string
	if transaction.PaymentMethod != nil {
		pm := string(*transaction.PaymentMethod)
		method = &pm
	}

	return &TransactionModel{
		ID:            transaction.ID,
		ClientID:      transaction.ClientID,
		Date:          transaction.Date,
		AmountSent:    transaction.AmountSent,
		AmountToPay:   transaction.AmountToPay,
		AmountPaid:    transaction.AmountPaid,
		Description:   transaction.Description,
		PaymentMethod: method,
		ReceiverName:  transaction.ReceiverName,
		CreatedBy:     transaction.CreatedBy,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
	}
}
