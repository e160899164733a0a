// Package summary contains the balance views built on the aggregator.
package summary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// GetSummariesInput represents the input for the balance overview.
type GetSummariesInput struct {
	Date   valueobject.CalendarDate // Zero means today
	Search string
	Sort   balance.SortOrder
}

// GetSummariesOutput represents the balance overview at a reference date.
type GetSummariesOutput struct {
	Date      valueobject.CalendarDate
	Summaries []*entity.ClientSummary
	Totals    entity.SummaryTotals
}

// GetSummariesUseCase computes every client's balance at a reference date.
// Computed summaries are cached per date; search and sort apply on top.
type GetSummariesUseCase struct {
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
	clock           adapter.Clock
}

// NewGetSummariesUseCase creates a new GetSummariesUseCase instance.
func NewGetSummariesUseCase(
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
	clock adapter.Clock,
) *GetSummariesUseCase {
	return &GetSummariesUseCase{
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
		clock:           clock,
	}
}

// Execute computes the overview.
func (uc *GetSummariesUseCase) Execute(ctx context.Context, input GetSummariesInput) (*GetSummariesOutput, error) {
	date := input.Date
	if date.IsZero() {
		date = uc.clock.Today()
	}

	summaries, err := uc.load(ctx, date)
	if err != nil {
		return nil, err
	}

	visible := append([]*entity.ClientSummary(nil), balance.FilterByName(summaries, input.Search)...)
	balance.SortSummaries(visible, input.Sort)

	return &GetSummariesOutput{
		Date:      date,
		Summaries: visible,
		Totals:    balance.Totals(visible),
	}, nil
}

func (uc *GetSummariesUseCase) load(ctx context.Context, date valueobject.CalendarDate) ([]*entity.ClientSummary, error) {
	cached, ok, err := uc.summaryCache.Get(ctx, date)
	if err != nil {
		slog.Warn("Failed to read summary cache", "date", date.String(), "error", err)
	} else if ok {
		return cached, nil
	}

	transactions, err := uc.transactionRepo.FindAllWithClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summaries, err := balance.ComputeSummaries(transactions, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summaries: %w", err)
	}

	if err := uc.summaryCache.Set(ctx, date, summaries); err != nil {
		slog.Warn("Failed to write summary cache", "date", date.String(), "error", err)
	}

	slog.Debug("Summaries computed",
		"date", date.String(),
		"transactions", len(transactions),
		"clients", len(summaries),
	)
	return summaries, nil
}
