// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// PaymentMethod tags how a payment was received. Informational only.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "CASH"
	PaymentMethodMobileMoney PaymentMethod = "MOBILE_MONEY"
)

// IsValid reports whether the payment method is a known value.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodMobileMoney
}

// Transaction represents one money movement tied to a client on a calendar date.
type Transaction struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	Date          valueobject.CalendarDate // Business date, distinct from CreatedAt
	AmountSent    decimal.Decimal          // Funds sent on the client's behalf
	AmountToPay   decimal.Decimal          // Amount the client owes for this entry
	AmountPaid    decimal.Decimal          // Amount the client paid against debt
	Description   string
	PaymentMethod *PaymentMethod
	ReceiverName  string
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSendTransaction creates a "send" transaction: funds dispatched for the client.
func NewSendTransaction(
	clientID uuid.UUID,
	date valueobject.CalendarDate,
	amountSent decimal.Decimal,
	amountToPay decimal.Decimal,
	description string,
	receiverName string,
	createdBy *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:           uuid.New(),
		ClientID:     clientID,
		Date:         date,
		AmountSent:   amountSent,
		AmountToPay:  amountToPay,
		AmountPaid:   decimal.Zero,
		Description:  description,
		ReceiverName: receiverName,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewPaymentTransaction creates a "payment" transaction: funds received from the client.
func NewPaymentTransaction(
	clientID uuid.UUID,
	date valueobject.CalendarDate,
	amountPaid decimal.Decimal,
	method PaymentMethod,
	description string,
	receiverName string,
	createdBy *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	// Only mobile-money payments carry a receiver.
	if method != PaymentMethodMobileMoney {
		receiverName = ""
	}

	return &Transaction{
		ID:            uuid.New(),
		ClientID:      clientID,
		Date:          date,
		AmountSent:    decimal.Zero,
		AmountToPay:   decimal.Zero,
		AmountPaid:    amountPaid,
		Description:   description,
		PaymentMethod: &method,
		ReceiverName:  receiverName,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsSend reports whether the transaction dispatched funds or created debt.
func (t *Transaction) IsSend() bool {
	return t.AmountSent.IsPositive() || t.AmountToPay.IsPositive()
}

// IsPayment reports whether the transaction received funds from the client.
func (t *Transaction) IsPayment() bool {
	return t.AmountPaid.IsPositive()
}

// NetDebt returns AmountToPay minus AmountPaid.
func (t *Transaction) NetDebt() decimal.Decimal {
	return t.AmountToPay.Sub(t.AmountPaid)
}

// TransactionWithClient represents a transaction joined with its client.
// Client is nil when the join could not be resolved.
type TransactionWithClient struct {
	Transaction *Transaction
	Client      *Client
}

// TransactionsByDate represents one client's transactions on a single date.
type TransactionsByDate struct {
	Date         valueobject.CalendarDate
	Transactions []*TransactionWithClient
}
