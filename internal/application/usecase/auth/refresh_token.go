package auth

import (
	"context"
	"fmt"

	"github.com/transfer-desk/backend/internal/application/adapter"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// RefreshTokenInput carries the refresh token being rotated.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput is the replacement pair.
type RefreshTokenOutput = adapter.TokenPair

// RefreshTokenUseCase exchanges a live refresh token for a new pair. The old
// token is revoked first, so each refresh token works at most once.
type RefreshTokenUseCase struct {
	users  adapter.UserRepository
	tokens adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(users adapter.UserRepository, tokens adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{users: users, tokens: tokens}
}

// Execute rotates the session. Blocked or deactivated operators are refused
// even while their token is still valid.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokens.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, rejectedToken("invalid or expired refresh token")
	}

	active, err := uc.tokens.IsRefreshTokenActive(ctx, input.RefreshToken)
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	case !active:
		return nil, rejectedToken("refresh token has been revoked")
	}

	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil || !user.CanLogin() {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeAccountDisabled,
			"account is blocked or inactive", domainerror.ErrAccountDisabled)
	}

	if err := uc.tokens.RevokeRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke rotated refresh token: %w", err)
	}

	pair, err := uc.tokens.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return pair, nil
}

func rejectedToken(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, message, domainerror.ErrInvalidToken)
}
