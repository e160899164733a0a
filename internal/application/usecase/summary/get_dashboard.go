package summary

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/application/usecase/dailybalance"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// GetDashboardInput represents the input for the daily dashboard.
type GetDashboardInput struct {
	Date valueobject.CalendarDate // Zero means today
}

// GetDashboardOutput combines client balances and cash positions of one date.
type GetDashboardOutput struct {
	Date          valueobject.CalendarDate
	Summaries     *GetSummariesOutput
	DailyBalances *dailybalance.ListDailyBalancesOutput
}

// GetDashboardUseCase loads both halves of the dashboard concurrently.
type GetDashboardUseCase struct {
	summaries *GetSummariesUseCase
	balances  *dailybalance.ListDailyBalancesUseCase
	clock     adapter.Clock
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	summaries *GetSummariesUseCase,
	balances *dailybalance.ListDailyBalancesUseCase,
	clock adapter.Clock,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		summaries: summaries,
		balances:  balances,
		clock:     clock,
	}
}

// Execute builds the dashboard. The first failing half cancels the other.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	date := input.Date
	if date.IsZero() {
		date = uc.clock.Today()
	}

	out := &GetDashboardOutput{Date: date}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summaries, err := uc.summaries.Execute(gctx, GetSummariesInput{Date: date})
		if err != nil {
			return err
		}
		out.Summaries = summaries
		return nil
	})

	g.Go(func() error {
		balances, err := uc.balances.Execute(gctx, dailybalance.ListDailyBalancesInput{Date: date})
		if err != nil {
			return err
		}
		out.DailyBalances = balances
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
