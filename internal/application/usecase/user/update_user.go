package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// UpdateUserInput represents the input for editing an account. Nil fields are left unchanged.
type UpdateUserInput struct {
	UserID          uuid.UUID
	Email           *string
	PhoneNumber     *string
	Password        *string
	ConfirmPassword *string
	IsAdmin         *bool
}

// UpdateUserOutput represents the edited account.
type UpdateUserOutput struct {
	User *UserOutput
}

// UpdateUserUseCase handles account edits, including administrator password resets.
type UpdateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute applies the edit. A password reset revokes the account's refresh tokens.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
	u, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			exists, err := uc.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return nil, domainerror.NewUserError(
					domainerror.ErrCodeUserEmailExists,
					"an account with this email already exists",
					domainerror.ErrEmailAlreadyExists,
				)
			}
			u.Email = email
		}
	}

	if input.PhoneNumber != nil {
		phone, err := normalizePhone(*input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		u.PhoneNumber = phone
	}

	passwordReset := false
	if input.Password != nil && *input.Password != "" {
		confirmation := ""
		if input.ConfirmPassword != nil {
			confirmation = *input.ConfirmPassword
		}
		hash, err := hashPassword(uc.passwordService, *input.Password, confirmation)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
		passwordReset = true
	}

	if input.IsAdmin != nil {
		u.IsAdmin = *input.IsAdmin
	}

	u.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if passwordReset {
		if err := uc.tokenService.RevokeSessions(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("failed to revoke tokens: %w", err)
		}
	}

	return &UpdateUserOutput{User: toOutput(u)}, nil
}
