package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/transfer-desk/backend/internal/application/usecase/auth"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// AuthController serves operator sign-in and session rotation.
type AuthController struct {
	login   *auth.LoginUserUseCase
	refresh *auth.RefreshTokenUseCase
	logout  *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{login: login, refresh: refresh, logout: logout}
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeInvalidCredentials))
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(out))
}

// RefreshToken handles POST /auth/refresh requests. The presented token is
// revoked and a new pair is issued.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err, string(domainerror.ErrCodeMissingToken))
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. It always succeeds so callers
// cannot probe which tokens exist.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.SessionRequest
	if ctx.ShouldBindJSON(&req) == nil {
		_ = c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken})
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}
