// Package maintenance contains data housekeeping use cases.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// ArchiveTransactionsInput represents the input for archiving old transactions.
type ArchiveTransactionsInput struct {
	Months      int        // Zero uses the configured default
	CreatedBy   *uuid.UUID // Restrict to clients created by this operator
	RequestedBy uuid.UUID
}

// ArchiveTransactionsOutput reports what was archived.
type ArchiveTransactionsOutput struct {
	Cutoff          string
	ClientsArchived int
	Deleted         int64
}

// ArchiveTransactionsUseCase collapses each client's transactions older than
// the cutoff into a single summary entry dated the day before the cutoff.
// Every balance computed at or after the cutoff is unchanged.
type ArchiveTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	summaryCache    adapter.SummaryCache
	clock           adapter.Clock
	defaultMonths   int
}

// NewArchiveTransactionsUseCase creates a new ArchiveTransactionsUseCase instance.
func NewArchiveTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	summaryCache adapter.SummaryCache,
	clock adapter.Clock,
	defaultMonths int,
) *ArchiveTransactionsUseCase {
	return &ArchiveTransactionsUseCase{
		transactionRepo: transactionRepo,
		summaryCache:    summaryCache,
		clock:           clock,
		defaultMonths:   defaultMonths,
	}
}

// Execute performs the archive.
func (uc *ArchiveTransactionsUseCase) Execute(ctx context.Context, input ArchiveTransactionsInput) (*ArchiveTransactionsOutput, error) {
	months := input.Months
	if months == 0 {
		months = uc.defaultMonths
	}
	if months < 1 {
		return nil, domainerror.NewBalanceError(
			domainerror.ErrCodeInvalidDateRange,
			"months must be at least 1",
			domainerror.ErrInvalidDateRange,
		)
	}

	cutoff := uc.clock.Today().AddMonths(-months)
	description := fmt.Sprintf("Résumé automatique des transactions avant le %s", cutoff.String())
	now := time.Now().UTC()

	result, err := uc.transactionRepo.ArchiveBefore(ctx, cutoff, input.CreatedBy,
		func(totals *adapter.ClientTotals) *entity.Transaction {
			return &entity.Transaction{
				ID:          uuid.New(),
				ClientID:    totals.ClientID,
				Date:        cutoff.AddDays(-1),
				AmountSent:  totals.AmountSent,
				AmountToPay: totals.AmountToPay,
				AmountPaid:  totals.AmountPaid,
				Description: description,
				CreatedBy:   &input.RequestedBy,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		})
	if err != nil {
		return nil, fmt.Errorf("archive before %s: %w", cutoff, err)
	}

	out := &ArchiveTransactionsOutput{
		Cutoff:          cutoff.String(),
		ClientsArchived: len(result.Clients),
		Deleted:         result.Deleted,
	}
	if out.ClientsArchived == 0 {
		return out, nil
	}

	if err := uc.summaryCache.InvalidateAll(ctx); err != nil {
		slog.Warn("Failed to invalidate summary cache", "error", err)
	}

	slog.Info("Transactions archived",
		"cutoff", out.Cutoff,
		"clients", out.ClientsArchived,
		"deleted", out.Deleted,
		"by", input.RequestedBy,
	)
	return out, nil
}
