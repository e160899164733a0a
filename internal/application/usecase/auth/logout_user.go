// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/transfer-desk/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for operator logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase revokes a refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute performs the logout. Revocation failures are logged, never returned.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if err := uc.tokenService.RevokeRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.Debug("Refresh token revocation failed", "error", err)
	}
	return nil
}
