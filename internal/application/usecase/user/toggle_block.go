package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
)

// ToggleBlockInput represents the input for blocking or unblocking an account.
type ToggleBlockInput struct {
	UserID      uuid.UUID
	RequestedBy uuid.UUID
}

// ToggleBlockOutput represents the account after the toggle.
type ToggleBlockOutput struct {
	User *UserOutput
}

// ToggleBlockUseCase flips the blocked flag. Blocking revokes refresh tokens.
type ToggleBlockUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewToggleBlockUseCase creates a new ToggleBlockUseCase instance.
func NewToggleBlockUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *ToggleBlockUseCase {
	return &ToggleBlockUseCase{userRepo: userRepo, tokenService: tokenService}
}

// Execute performs the toggle.
func (uc *ToggleBlockUseCase) Execute(ctx context.Context, input ToggleBlockInput) (*ToggleBlockOutput, error) {
	if err := rejectSelf(input.UserID, input.RequestedBy); err != nil {
		return nil, err
	}

	u, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	u.Blocked = !u.Blocked
	u.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if u.Blocked {
		if err := uc.tokenService.RevokeSessions(ctx, u.ID); err != nil {
			return nil, fmt.Errorf("failed to revoke tokens: %w", err)
		}
	}

	slog.Info("User block toggled", "user_id", u.ID, "blocked", u.Blocked, "by", input.RequestedBy)
	return &ToggleBlockOutput{User: toOutput(u)}, nil
}
