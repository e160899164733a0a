package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/dailybalance"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// DailyBalanceController handles cash position endpoints.
type DailyBalanceController struct {
	listUseCase   *dailybalance.ListDailyBalancesUseCase
	upsertUseCase *dailybalance.UpsertDailyBalanceUseCase
	renameUseCase *dailybalance.RenameDailyBalanceUseCase
}

// NewDailyBalanceController creates a new daily balance controller instance.
func NewDailyBalanceController(
	listUseCase *dailybalance.ListDailyBalancesUseCase,
	upsertUseCase *dailybalance.UpsertDailyBalanceUseCase,
	renameUseCase *dailybalance.RenameDailyBalanceUseCase,
) *DailyBalanceController {
	return &DailyBalanceController{
		listUseCase:   listUseCase,
		upsertUseCase: upsertUseCase,
		renameUseCase: renameUseCase,
	}
}

// List handles GET /daily-balances requests.
func (c *DailyBalanceController) List(ctx *gin.Context) {
	date, ok := queryDate(ctx, "date")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), dailybalance.ListDailyBalancesInput{Date: date})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyBalanceListResponse(output))
}

// Upsert handles PUT /daily-balances requests.
func (c *DailyBalanceController) Upsert(ctx *gin.Context) {
	var req dto.UpsertDailyBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeDailyBalanceNameRequired))
		return
	}

	date, err := valueobject.ParseCalendarDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeDailyBalanceInvalidDate),
		})
		return
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), dailybalance.UpsertDailyBalanceInput{
		Date:   date,
		Name:   req.Name,
		Amount: req.Amount,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyBalanceResponse(output.Balance))
}

// Rename handles PATCH /daily-balances/:id requests.
func (c *DailyBalanceController) Rename(ctx *gin.Context) {
	id, ok := pathID(ctx, "daily balance", string(domainerror.ErrCodeDailyBalanceNotFound))
	if !ok {
		return
	}

	var req dto.RenameDailyBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeDailyBalanceNameRequired))
		return
	}

	output, err := c.renameUseCase.Execute(ctx.Request.Context(), dailybalance.RenameDailyBalanceInput{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyBalanceResponse(output.Balance))
}
