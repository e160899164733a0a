package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/summary"
	"github.com/transfer-desk/backend/internal/domain/balance"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// SummaryController handles balance overview endpoints.
type SummaryController struct {
	summariesUseCase     *summary.GetSummariesUseCase
	clientSummaryUseCase *summary.GetClientSummaryUseCase
	dateStatusesUseCase  *summary.GetDateStatusesUseCase
	dashboardUseCase     *summary.GetDashboardUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	summariesUseCase *summary.GetSummariesUseCase,
	clientSummaryUseCase *summary.GetClientSummaryUseCase,
	dateStatusesUseCase *summary.GetDateStatusesUseCase,
	dashboardUseCase *summary.GetDashboardUseCase,
) *SummaryController {
	return &SummaryController{
		summariesUseCase:     summariesUseCase,
		clientSummaryUseCase: clientSummaryUseCase,
		dateStatusesUseCase:  dateStatusesUseCase,
		dashboardUseCase:     dashboardUseCase,
	}
}

// List handles GET /summaries requests.
// Query parameters: date (YYYY-MM-DD, default today), search, sort (name|debt).
func (c *SummaryController) List(ctx *gin.Context) {
	date, ok := queryDate(ctx, "date")
	if !ok {
		return
	}

	output, err := c.summariesUseCase.Execute(ctx.Request.Context(), summary.GetSummariesInput{
		Date:   date,
		Search: ctx.Query("search"),
		Sort:   balance.ParseSortOrder(ctx.Query("sort")),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummariesResponse(output))
}

// GetClient handles GET /clients/:id/summary requests.
func (c *SummaryController) GetClient(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "client", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	date, ok := queryDate(ctx, "date")
	if !ok {
		return
	}

	output, err := c.clientSummaryUseCase.Execute(ctx.Request.Context(), summary.GetClientSummaryInput{
		ClientID: clientID,
		Date:     date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ClientSummaryEnvelope{
		Date:    output.Date.String(),
		Summary: dto.ToClientSummaryResponse(output.Summary),
	})
}

// Calendar handles GET /summaries/calendar requests.
func (c *SummaryController) Calendar(ctx *gin.Context) {
	output, err := c.dateStatusesUseCase.Execute(ctx.Request.Context(), summary.GetDateStatusesInput{
		Month: ctx.Query("month"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalendarResponse(output))
}

// Dashboard handles GET /dashboard requests.
func (c *SummaryController) Dashboard(ctx *gin.Context) {
	date, ok := queryDate(ctx, "date")
	if !ok {
		return
	}

	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), summary.GetDashboardInput{Date: date})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}
