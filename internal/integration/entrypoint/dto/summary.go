package dto

import (
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/usecase/summary"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// ClientSummaryResponse represents one client's balance at a reference date.
// Amounts are rounded to whole currency units.
type ClientSummaryResponse struct {
	ClientID     string                `json:"client_id"`
	ClientName   string                `json:"client_name"`
	TodaySent    string                `json:"today_sent"`
	TodayPaid    string                `json:"today_paid"`
	PreviousDebt string                `json:"previous_debt"`
	TotalDebt    string                `json:"total_debt"`
	Status       string                `json:"status"`
	Transactions []TransactionResponse `json:"transactions"`
}

// SummaryTotalsResponse represents the overview totals.
type SummaryTotalsResponse struct {
	TotalDebts    string `json:"total_debts"`
	TotalAdvances string `json:"total_advances"`
	ClientCount   int    `json:"client_count"`
}

// SummariesResponse represents the balance overview of a date.
type SummariesResponse struct {
	Date      string                  `json:"date"`
	Summaries []ClientSummaryResponse `json:"summaries"`
	Totals    SummaryTotalsResponse   `json:"totals"`
}

// ClientSummaryEnvelope represents the response for a single client's balance.
type ClientSummaryEnvelope struct {
	Date    string                `json:"date"`
	Summary ClientSummaryResponse `json:"summary"`
}

// DateStatusResponse represents the calendar status of one date.
type DateStatusResponse struct {
	HasDebt    bool `json:"has_debt"`
	HasAdvance bool `json:"has_advance"`
}

// CalendarResponse represents the statuses of every date in a month.
type CalendarResponse struct {
	From string                        `json:"from"`
	To   string                        `json:"to"`
	Days map[string]DateStatusResponse `json:"days"`
}

// DashboardResponse represents the combined view of a date.
type DashboardResponse struct {
	Date          string                   `json:"date"`
	Summaries     SummariesResponse        `json:"summaries"`
	DailyBalances DailyBalanceListResponse `json:"daily_balances"`
}

// ToClientSummaryResponse converts a ClientSummary to a response DTO.
func ToClientSummaryResponse(s *entity.ClientSummary) ClientSummaryResponse {
	response := ClientSummaryResponse{
		ClientID:     s.ClientID.String(),
		ClientName:   s.ClientName,
		TodaySent:    displayAmount(s.TodaySent),
		TodayPaid:    displayAmount(s.TodayPaid),
		PreviousDebt: displayAmount(s.PreviousDebt),
		TotalDebt:    displayAmount(s.TotalDebt),
		Status:       summaryStatus(s),
		Transactions: make([]TransactionResponse, 0, len(s.Transactions)),
	}

	for _, record := range s.Transactions {
		response.Transactions = append(response.Transactions, ToTransactionWithClientResponse(record))
	}

	return response
}

// ToSummariesResponse converts the overview output to a response DTO.
func ToSummariesResponse(output *summary.GetSummariesOutput) SummariesResponse {
	response := SummariesResponse{
		Date:      output.Date.String(),
		Summaries: make([]ClientSummaryResponse, 0, len(output.Summaries)),
		Totals: SummaryTotalsResponse{
			TotalDebts:    displayAmount(output.Totals.TotalDebts),
			TotalAdvances: displayAmount(output.Totals.TotalAdvances),
			ClientCount:   output.Totals.ClientCount,
		},
	}

	for _, s := range output.Summaries {
		response.Summaries = append(response.Summaries, ToClientSummaryResponse(s))
	}

	return response
}

// ToCalendarResponse converts date statuses to a response DTO.
func ToCalendarResponse(output *summary.GetDateStatusesOutput) CalendarResponse {
	days := make(map[string]DateStatusResponse, len(output.Statuses))
	for date, status := range output.Statuses {
		days[date.String()] = DateStatusResponse{
			HasDebt:    status.HasDebt,
			HasAdvance: status.HasAdvance,
		}
	}

	return CalendarResponse{
		From: output.From.String(),
		To:   output.To.String(),
		Days: days,
	}
}

// ToDashboardResponse converts the dashboard output to a response DTO.
func ToDashboardResponse(output *summary.GetDashboardOutput) DashboardResponse {
	return DashboardResponse{
		Date:          output.Date.String(),
		Summaries:     ToSummariesResponse(output.Summaries),
		DailyBalances: ToDailyBalanceListResponse(output.DailyBalances),
	}
}

func summaryStatus(s *entity.ClientSummary) string {
	switch {
	case s.HasDebt():
		return "debt"
	case s.HasAdvance():
		return "advance"
	default:
		return "settled"
	}
}

func displayAmount(amount decimal.Decimal) string {
	return balance.RoundForDisplay(amount).String()
}
