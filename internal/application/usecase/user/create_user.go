package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

// CreateUserInput represents the input for creating an operator account.
type CreateUserInput struct {
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	IsAdmin         bool
}

// CreateUserOutput represents the created account.
type CreateUserOutput struct {
	User *UserOutput
}

// CreateUserUseCase handles account creation by an administrator.
type CreateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
func NewCreateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo, passwordService: passwordService}
}

// Execute creates the account.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(uc.passwordService, input.Password, input.ConfirmPassword)
	if err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, emailTaken()
	}

	u := entity.NewAppUser(email, phone, hash)
	u.IsAdmin = input.IsAdmin
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", u.ID, "is_admin", u.IsAdmin)
	return &CreateUserOutput{User: toOutput(u)}, nil
}

func emailTaken() error {
	return domainerror.NewUserError(
		domainerror.ErrCodeUserEmailExists,
		"an account with this email already exists",
		domainerror.ErrEmailAlreadyExists,
	)
}
