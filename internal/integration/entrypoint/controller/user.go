package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/user"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// UserController handles operator account administration endpoints.
type UserController struct {
	createUseCase      *user.CreateUserUseCase
	listUseCase        *user.ListUsersUseCase
	updateUseCase      *user.UpdateUserUseCase
	toggleBlockUseCase *user.ToggleBlockUseCase
	deactivateUseCase  *user.DeactivateUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	createUseCase *user.CreateUserUseCase,
	listUseCase *user.ListUsersUseCase,
	updateUseCase *user.UpdateUserUseCase,
	toggleBlockUseCase *user.ToggleBlockUseCase,
	deactivateUseCase *user.DeactivateUserUseCase,
) *UserController {
	return &UserController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		updateUseCase:      updateUseCase,
		toggleBlockUseCase: toggleBlockUseCase,
		deactivateUseCase:  deactivateUseCase,
	}
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}

// Create handles POST /users requests.
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeUserInvalidEmail))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), user.CreateUserInput{
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		IsAdmin:         req.IsAdmin,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// Update handles PATCH /users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	userID, ok := pathID(ctx, "user", string(domainerror.ErrCodeUserNotFound))
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeUserInvalidEmail))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), user.UpdateUserInput{
		UserID:          userID,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		IsAdmin:         req.IsAdmin,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// ToggleBlock handles POST /users/:id/toggle-block requests.
func (c *UserController) ToggleBlock(ctx *gin.Context) {
	requesterID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	userID, ok := pathID(ctx, "user", string(domainerror.ErrCodeUserNotFound))
	if !ok {
		return
	}

	output, err := c.toggleBlockUseCase.Execute(ctx.Request.Context(), user.ToggleBlockInput{
		UserID:      userID,
		RequestedBy: requesterID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Deactivate handles DELETE /users/:id requests.
func (c *UserController) Deactivate(ctx *gin.Context) {
	requesterID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	userID, ok := pathID(ctx, "user", string(domainerror.ErrCodeUserNotFound))
	if !ok {
		return
	}

	err := c.deactivateUseCase.Execute(ctx.Request.Context(), user.DeactivateUserInput{
		UserID:      userID,
		RequestedBy: requesterID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
