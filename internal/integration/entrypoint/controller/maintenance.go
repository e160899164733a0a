package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/usecase/maintenance"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// MaintenanceController handles administrative maintenance endpoints.
type MaintenanceController struct {
	archiveUseCase *maintenance.ArchiveTransactionsUseCase
}

// NewMaintenanceController creates a new maintenance controller instance.
func NewMaintenanceController(archiveUseCase *maintenance.ArchiveTransactionsUseCase) *MaintenanceController {
	return &MaintenanceController{
		archiveUseCase: archiveUseCase,
	}
}

// Archive handles POST /maintenance/archive requests.
// An empty body archives every client with the configured retention.
func (c *MaintenanceController) Archive(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ArchiveTransactionsRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidBody(ctx, err, string(domainerror.ErrCodeInvalidDateRange))
			return
		}
	}

	input := maintenance.ArchiveTransactionsInput{
		Months:      req.Months,
		RequestedBy: userID,
	}
	if req.CreatedBy != nil {
		createdBy := uuid.MustParse(*req.CreatedBy)
		input.CreatedBy = &createdBy
	}

	output, err := c.archiveUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ArchiveTransactionsResponse{
		Cutoff:          output.Cutoff,
		ClientsArchived: output.ClientsArchived,
		Deleted:         output.Deleted,
	})
}
