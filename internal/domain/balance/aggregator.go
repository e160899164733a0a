// Package balance turns date-stamped client transactions into running balances.
//
// Every view that shows "previous debt", "today sent/paid" or "total debt" goes
// through this package; nothing else re-derives the formula. All functions are
// pure: no I/O, no clock, no shared state.
package balance

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// ComputeSummaries produces one ClientSummary per distinct client present in
// transactions, balanced at referenceDate.
//
// Records whose client cannot be resolved (nil client, nil client id, empty
// name) are skipped. Any other malformed record fails the whole call with a
// *domainerror.MalformedRecordError. Output is sorted by client name, then id.
func ComputeSummaries(
	transactions []*entity.TransactionWithClient,
	referenceDate valueobject.CalendarDate,
) ([]*entity.ClientSummary, error) {
	if referenceDate.IsZero() {
		return nil, domainerror.ErrInvalidDateRange
	}

	byClient := make(map[uuid.UUID]*entity.ClientSummary)

	for _, record := range transactions {
		if record == nil || record.Transaction == nil {
			return nil, Validate(nil)
		}
		if !hasResolvableClient(record) {
			slog.Debug("Skipping transaction with unresolved client",
				"transaction_id", record.Transaction.ID,
				"error", domainerror.ErrUnknownClientReference,
			)
			continue
		}
		if err := Validate(record.Transaction); err != nil {
			return nil, err
		}

		clientID := record.Transaction.ClientID
		summary, ok := byClient[clientID]
		if !ok {
			summary = newSummary(clientID, record.Client.Name)
			byClient[clientID] = summary
		}

		fold(summary, record.Transaction, referenceDate)
		summary.Transactions = append(summary.Transactions, record)
	}

	summaries := make([]*entity.ClientSummary, 0, len(byClient))
	for _, summary := range byClient {
		finalize(summary)
		summaries = append(summaries, summary)
	}

	SortSummaries(summaries, SortByName)
	return summaries, nil
}

// ComputeClientSummary balances a single client's transactions at referenceDate.
// Every transaction is assumed to belong to client.
func ComputeClientSummary(
	client *entity.Client,
	transactions []*entity.Transaction,
	referenceDate valueobject.CalendarDate,
) (*entity.ClientSummary, error) {
	if referenceDate.IsZero() {
		return nil, domainerror.ErrInvalidDateRange
	}

	summary := newSummary(client.ID, client.Name)
	for _, tx := range transactions {
		if err := Validate(tx); err != nil {
			return nil, err
		}
		fold(summary, tx, referenceDate)
		summary.Transactions = append(summary.Transactions, &entity.TransactionWithClient{
			Transaction: tx,
			Client:      client,
		})
	}

	finalize(summary)
	return summary, nil
}

// Validate rejects a transaction that would corrupt a displayed balance.
func Validate(tx *entity.Transaction) error {
	switch {
	case tx == nil:
		return domainerror.NewMalformedRecordError(uuid.Nil, "transaction", "is missing")
	case tx.ID == uuid.Nil:
		return domainerror.NewMalformedRecordError(tx.ID, "id", "is required")
	case tx.Date.IsZero():
		return domainerror.NewMalformedRecordError(tx.ID, "date", "is required")
	case tx.AmountSent.IsNegative():
		return domainerror.NewMalformedRecordError(tx.ID, "amount_sent", "must not be negative")
	case tx.AmountToPay.IsNegative():
		return domainerror.NewMalformedRecordError(tx.ID, "amount_to_pay", "must not be negative")
	case tx.AmountPaid.IsNegative():
		return domainerror.NewMalformedRecordError(tx.ID, "amount_paid", "must not be negative")
	}
	return nil
}

// RoundForDisplay rounds an amount to whole currency units, half away from zero.
// Accumulation always happens at full precision.
func RoundForDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

func hasResolvableClient(record *entity.TransactionWithClient) bool {
	return record.Client != nil &&
		record.Transaction.ClientID != uuid.Nil &&
		strings.TrimSpace(record.Client.Name) != ""
}

func newSummary(clientID uuid.UUID, name string) *entity.ClientSummary {
	return &entity.ClientSummary{
		ClientID:     clientID,
		ClientName:   name,
		TodaySent:    decimal.Zero,
		TodayPaid:    decimal.Zero,
		PreviousDebt: decimal.Zero,
		TotalDebt:    decimal.Zero,
		Transactions: make([]*entity.TransactionWithClient, 0),
	}
}

// fold adds one transaction to the accumulators. "Today sent" sums the amount
// owed, not the amount handed over. Entries after the reference date touch
// neither accumulator.
func fold(summary *entity.ClientSummary, tx *entity.Transaction, referenceDate valueobject.CalendarDate) {
	switch tx.Date.Compare(referenceDate) {
	case 0:
		summary.TodaySent = summary.TodaySent.Add(tx.AmountToPay)
		summary.TodayPaid = summary.TodayPaid.Add(tx.AmountPaid)
	case -1:
		summary.PreviousDebt = summary.PreviousDebt.Add(tx.NetDebt())
	}
}

// finalize derives TotalDebt and puts the transactions in a canonical order,
// newest business date first, then newest entry, then id, so the summary does
// not depend on input order.
func finalize(summary *entity.ClientSummary) {
	summary.TotalDebt = summary.PreviousDebt.Add(summary.TodaySent.Sub(summary.TodayPaid))

	sort.SliceStable(summary.Transactions, func(i, j int) bool {
		a, b := summary.Transactions[i].Transaction, summary.Transactions[j].Transaction
		if c := a.Date.Compare(b.Date); c != 0 {
			return c > 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
