// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/domain/entity"
)

// UserRepository persists operator accounts. Lookups by email ignore case
// and missing accounts are reported as domainerror.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.AppUser) error
	Update(ctx context.Context, user *entity.AppUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AppUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.AppUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns every operator, newest first.
	List(ctx context.Context) ([]*entity.AppUser, error)
}
