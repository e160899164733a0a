package dailybalance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// UpsertDailyBalanceInput represents the input for saving a cash position.
type UpsertDailyBalanceInput struct {
	Date   valueobject.CalendarDate
	Name   string
	Amount decimal.Decimal
}

// UpsertDailyBalanceOutput represents the saved cash position.
type UpsertDailyBalanceOutput struct {
	Balance *entity.DailyBalance
}

// UpsertDailyBalanceUseCase inserts a position or updates the amount of the (date, name) entry.
type UpsertDailyBalanceUseCase struct {
	balanceRepo adapter.DailyBalanceRepository
}

// NewUpsertDailyBalanceUseCase creates a new UpsertDailyBalanceUseCase instance.
func NewUpsertDailyBalanceUseCase(balanceRepo adapter.DailyBalanceRepository) *UpsertDailyBalanceUseCase {
	return &UpsertDailyBalanceUseCase{balanceRepo: balanceRepo}
}

// Execute saves the position.
func (uc *UpsertDailyBalanceUseCase) Execute(ctx context.Context, input UpsertDailyBalanceInput) (*UpsertDailyBalanceOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewDailyBalanceError(
			domainerror.ErrCodeDailyBalanceInvalidDate,
			"date is required",
			domainerror.ErrInvalidDateRange,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewDailyBalanceError(
			domainerror.ErrCodeDailyBalanceNameRequired,
			"balance name is required",
			domainerror.ErrDailyBalanceNameRequired,
		)
	}

	balance := entity.NewDailyBalance(input.Date, name, input.Amount)
	balance.UpdatedAt = time.Now().UTC()

	if err := uc.balanceRepo.Upsert(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to save daily balance: %w", err)
	}

	slog.Info("Daily balance saved",
		"date", input.Date.String(),
		"name", name,
		"amount", input.Amount.String(),
	)

	return &UpsertDailyBalanceOutput{Balance: balance}, nil
}
