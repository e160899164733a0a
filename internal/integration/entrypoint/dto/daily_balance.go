package dto

import (
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/usecase/dailybalance"
	"github.com/transfer-desk/backend/internal/domain/entity"
)

// UpsertDailyBalanceRequest represents the request body for saving a position.
type UpsertDailyBalanceRequest struct {
	Date   string          `json:"date" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// RenameDailyBalanceRequest represents the request body for renaming a position.
type RenameDailyBalanceRequest struct {
	Name string `json:"name" binding:"required"`
}

// DailyBalanceResponse represents a cash position in API responses.
// Positions not saved yet have no id.
type DailyBalanceResponse struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// DailyBalanceListResponse represents the positions of a date.
type DailyBalanceListResponse struct {
	Date     string                 `json:"date"`
	Balances []DailyBalanceResponse `json:"balances"`
	Total    string                 `json:"total"`
}

// ToDailyBalanceResponse converts a DailyBalance entity to a response DTO.
func ToDailyBalanceResponse(b *entity.DailyBalance) DailyBalanceResponse {
	response := DailyBalanceResponse{
		Date:   b.Date.String(),
		Name:   b.Name,
		Amount: b.Amount.String(),
	}
	if b.IsPersisted() {
		response.ID = b.ID.String()
	}
	return response
}

// ToDailyBalanceListResponse converts the listing output to a response DTO.
func ToDailyBalanceListResponse(output *dailybalance.ListDailyBalancesOutput) DailyBalanceListResponse {
	response := DailyBalanceListResponse{
		Date:     output.Date.String(),
		Balances: make([]DailyBalanceResponse, 0, len(output.Balances)),
		Total:    output.Total.String(),
	}
	for _, b := range output.Balances {
		response.Balances = append(response.Balances, ToDailyBalanceResponse(b))
	}
	return response
}
