package dailybalance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// RenameDailyBalanceInput represents the input for renaming a cash position.
type RenameDailyBalanceInput struct {
	ID   uuid.UUID
	Name string
}

// RenameDailyBalanceOutput represents the renamed position.
type RenameDailyBalanceOutput struct {
	Balance *entity.DailyBalance
}

// RenameDailyBalanceUseCase handles position renaming.
type RenameDailyBalanceUseCase struct {
	balanceRepo adapter.DailyBalanceRepository
}

// NewRenameDailyBalanceUseCase creates a new RenameDailyBalanceUseCase instance.
func NewRenameDailyBalanceUseCase(balanceRepo adapter.DailyBalanceRepository) *RenameDailyBalanceUseCase {
	return &RenameDailyBalanceUseCase{balanceRepo: balanceRepo}
}

// Execute performs the rename.
func (uc *RenameDailyBalanceUseCase) Execute(ctx context.Context, input RenameDailyBalanceInput) (*RenameDailyBalanceOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewDailyBalanceError(
			domainerror.ErrCodeDailyBalanceNameRequired,
			"balance name is required",
			domainerror.ErrDailyBalanceNameRequired,
		)
	}

	balance, err := uc.balanceRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
			return nil, domainerror.NewDailyBalanceError(
				domainerror.ErrCodeDailyBalanceNotFound,
				"daily balance not found",
				domainerror.ErrDailyBalanceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find daily balance: %w", err)
	}

	exists, err := uc.balanceRepo.ExistsByDateAndName(ctx, balance.Date, name, balance.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check daily balance name: %w", err)
	}
	if exists {
		return nil, domainerror.NewDailyBalanceError(
			domainerror.ErrCodeDailyBalanceNameExists,
			"a balance with this name already exists for the date",
			domainerror.ErrDailyBalanceNameExists,
		)
	}

	balance.Name = name
	balance.UpdatedAt = time.Now().UTC()
	if err := uc.balanceRepo.Update(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to update daily balance: %w", err)
	}

	return &RenameDailyBalanceOutput{Balance: balance}, nil
}
