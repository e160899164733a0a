package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/export"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// ExportController handles period export endpoints.
type ExportController struct {
	exportUseCase *export.ExportSummaryUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(exportUseCase *export.ExportSummaryUseCase) *ExportController {
	return &ExportController{
		exportUseCase: exportUseCase,
	}
}

// Export handles POST /exports requests.
// The rendered document is returned as an attachment.
func (c *ExportController) Export(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ExportSummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeInvalidExportRange))
		return
	}

	start, startErr := valueobject.ParseCalendarDate(req.StartDate)
	end, endErr := valueobject.ParseCalendarDate(req.EndDate)
	if startErr != nil || endErr != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidExportRange),
		})
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), export.ExportSummaryInput{
		Start:       start,
		End:         end,
		Format:      req.Format,
		Password:    req.Password,
		RequestedBy: userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+strconv.Quote(output.FileName))
	ctx.Data(http.StatusOK, output.Document.ContentType, output.Document.Body)
}
