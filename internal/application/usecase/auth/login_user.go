// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// LoginUserInput represents the input for operator login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the output of operator login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.AppUser
}

// LoginUserUseCase handles operator login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	if !user.CanLogin() {
		slog.Warn("Login refused for disabled account", "user_id", user.ID)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAccountDisabled,
			"account is blocked or inactive",
			domainerror.ErrAccountDisabled,
		)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
