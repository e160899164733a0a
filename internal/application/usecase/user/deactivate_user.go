package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
)

// DeactivateUserInput represents the input for deactivating an account.
type DeactivateUserInput struct {
	UserID      uuid.UUID
	RequestedBy uuid.UUID
}

// DeactivateUserUseCase soft-deletes an account: the row stays, login stops.
type DeactivateUserUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewDeactivateUserUseCase creates a new DeactivateUserUseCase instance.
func NewDeactivateUserUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *DeactivateUserUseCase {
	return &DeactivateUserUseCase{userRepo: userRepo, tokenService: tokenService}
}

// Execute performs the deactivation.
func (uc *DeactivateUserUseCase) Execute(ctx context.Context, input DeactivateUserInput) error {
	if err := rejectSelf(input.UserID, input.RequestedBy); err != nil {
		return err
	}

	u, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return err
	}

	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if err := uc.tokenService.RevokeSessions(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	slog.Info("User deactivated", "user_id", u.ID, "by", input.RequestedBy)
	return nil
}
