// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientSummary is the derived, never persisted balance of one client at a reference date.
type ClientSummary struct {
	ClientID     uuid.UUID
	ClientName   string
	TodaySent    decimal.Decimal // Sum of AmountToPay dated on the reference date
	TodayPaid    decimal.Decimal // Sum of AmountPaid dated on the reference date
	PreviousDebt decimal.Decimal // Net owed from entries strictly before the reference date
	TotalDebt    decimal.Decimal // PreviousDebt + (TodaySent - TodayPaid); negative is an advance
	Transactions []*TransactionWithClient
}

// HasDebt reports whether the client owes money.
func (s *ClientSummary) HasDebt() bool {
	return s.TotalDebt.IsPositive()
}

// HasAdvance reports whether the client has paid more than owed.
func (s *ClientSummary) HasAdvance() bool {
	return s.TotalDebt.IsNegative()
}

// SummaryTotals aggregates a set of client summaries for display.
type SummaryTotals struct {
	TotalDebts    decimal.Decimal // Sum of positive total debts
	TotalAdvances decimal.Decimal // Sum of negative total debts (non-positive)
	ClientCount   int
}

// DateStatus flags a calendar date that carries debt or advance activity.
type DateStatus struct {
	HasDebt    bool
	HasAdvance bool
}
