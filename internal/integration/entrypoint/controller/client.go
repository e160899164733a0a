package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/client"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// ClientController handles client endpoints.
type ClientController struct {
	createUseCase *client.CreateClientUseCase
	renameUseCase *client.RenameClientUseCase
	deleteUseCase *client.DeleteClientUseCase
	searchUseCase *client.SearchClientsUseCase
}

// NewClientController creates a new client controller instance.
func NewClientController(
	createUseCase *client.CreateClientUseCase,
	renameUseCase *client.RenameClientUseCase,
	deleteUseCase *client.DeleteClientUseCase,
	searchUseCase *client.SearchClientsUseCase,
) *ClientController {
	return &ClientController{
		createUseCase: createUseCase,
		renameUseCase: renameUseCase,
		deleteUseCase: deleteUseCase,
		searchUseCase: searchUseCase,
	}
}

// Search handles GET /clients requests.
func (c *ClientController) Search(ctx *gin.Context) {
	output, err := c.searchUseCase.Execute(ctx.Request.Context(), client.SearchClientsInput{
		Term: ctx.Query("search"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(output.Clients))
}

// Create handles POST /clients requests.
func (c *ClientController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeClientNameRequired))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), client.CreateClientInput{
		Name:      req.Name,
		CreatedBy: &userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(output.Client))
}

// Rename handles PATCH /clients/:id requests.
func (c *ClientController) Rename(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "client", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	var req dto.RenameClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeClientNameRequired))
		return
	}

	output, err := c.renameUseCase.Execute(ctx.Request.Context(), client.RenameClientInput{
		ClientID: clientID,
		Name:     req.Name,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(output.Client))
}

// Delete handles DELETE /clients/:id requests.
func (c *ClientController) Delete(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "client", string(domainerror.ErrCodeClientNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), client.DeleteClientInput{ClientID: clientID}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
