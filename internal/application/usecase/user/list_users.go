package user

import (
	"context"
	"fmt"

	"github.com/transfer-desk/backend/internal/application/adapter"
)

// ListUsersOutput lists accounts, newest first.
type ListUsersOutput struct {
	Users []*UserOutput
}

// ListUsersUseCase handles account listing.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists the accounts.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := &ListUsersOutput{Users: make([]*UserOutput, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, toOutput(u))
	}
	return out, nil
}
