package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// MonthLayout is the "YYYY-MM" layout of calendar month queries.
const MonthLayout = "2006-01"

// GetDateStatusesInput represents the input for the month calendar.
type GetDateStatusesInput struct {
	Month string // "YYYY-MM"; empty means the current month
}

// GetDateStatusesOutput flags the dates of a month that carry activity.
type GetDateStatusesOutput struct {
	From     valueobject.CalendarDate
	To       valueobject.CalendarDate
	Statuses map[valueobject.CalendarDate]entity.DateStatus
}

// GetDateStatusesUseCase computes the calendar widget markers.
type GetDateStatusesUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetDateStatusesUseCase creates a new GetDateStatusesUseCase instance.
func NewGetDateStatusesUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetDateStatusesUseCase {
	return &GetDateStatusesUseCase{transactionRepo: transactionRepo, clock: clock}
}

// Execute computes the statuses of the month.
func (uc *GetDateStatusesUseCase) Execute(ctx context.Context, input GetDateStatusesInput) (*GetDateStatusesOutput, error) {
	var from valueobject.CalendarDate
	if month := strings.TrimSpace(input.Month); month != "" {
		parsed, err := time.Parse(MonthLayout, month)
		if err != nil {
			return nil, domainerror.NewBalanceError(
				domainerror.ErrCodeInvalidDate,
				"month must use the YYYY-MM format",
				err,
			)
		}
		from = valueobject.DateOf(parsed)
	} else {
		today := uc.clock.Today()
		from = valueobject.NewCalendarDate(today.Year(), today.Month(), 1)
	}
	to := from.AddMonths(1).AddDays(-1)

	transactions, err := uc.transactionRepo.FindWithClientsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	statuses, err := balance.DateStatuses(transactions, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute date statuses: %w", err)
	}

	return &GetDateStatusesOutput{From: from, To: to, Statuses: statuses}, nil
}
