// Package dailybalance contains the cash-position use cases.
package dailybalance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// ListDailyBalancesInput represents the input for listing cash positions.
type ListDailyBalancesInput struct {
	Date valueobject.CalendarDate // Zero means today
}

// ListDailyBalancesOutput lists stored entries in creation order, followed by
// zero-valued placeholders for every default position missing on the date.
type ListDailyBalancesOutput struct {
	Date     valueobject.CalendarDate
	Balances []*entity.DailyBalance
	Total    decimal.Decimal
}

// ListDailyBalancesUseCase handles cash-position listing.
type ListDailyBalancesUseCase struct {
	balanceRepo adapter.DailyBalanceRepository
	clock       adapter.Clock
}

// NewListDailyBalancesUseCase creates a new ListDailyBalancesUseCase instance.
func NewListDailyBalancesUseCase(balanceRepo adapter.DailyBalanceRepository, clock adapter.Clock) *ListDailyBalancesUseCase {
	return &ListDailyBalancesUseCase{balanceRepo: balanceRepo, clock: clock}
}

// Execute lists the positions of the date.
func (uc *ListDailyBalancesUseCase) Execute(ctx context.Context, input ListDailyBalancesInput) (*ListDailyBalancesOutput, error) {
	date := input.Date
	if date.IsZero() {
		date = uc.clock.Today()
	}

	stored, err := uc.balanceRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily balances: %w", err)
	}

	present := make(map[string]bool, len(stored))
	balances := make([]*entity.DailyBalance, 0, len(stored)+len(entity.DefaultBalanceNames))
	total := decimal.Zero
	for _, b := range stored {
		present[b.Name] = true
		balances = append(balances, b)
		total = total.Add(b.Amount)
	}

	for _, name := range entity.DefaultBalanceNames {
		if present[name] {
			continue
		}
		balances = append(balances, &entity.DailyBalance{
			Date:   date,
			Name:   name,
			Amount: decimal.Zero,
		})
	}

	return &ListDailyBalancesOutput{Date: date, Balances: balances, Total: total}, nil
}
