package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

// userRepository stores operator accounts in app_users. Emails compare
// case-insensitively everywhere.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts user, failing with ErrEmailAlreadyExists when the email is taken.
func (r *userRepository) Create(ctx context.Context, user *entity.AppUser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return domainerror.ErrEmailAlreadyExists
		}
		if err := tx.Create(model.UserFromEntity(user)).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppUser, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.AppUser, error) {
	return r.first(r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)))
}

func (r *userRepository) first(query *gorm.DB) (*entity.AppUser, error) {
	var row model.UserModel
	err := query.First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return row.ToEntity(), nil
}

// List returns every operator, newest first.
func (r *userRepository) List(ctx context.Context) ([]*entity.AppUser, error) {
	var rows []model.UserModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*entity.AppUser, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToEntity())
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.AppUser) error {
	if err := r.db.WithContext(ctx).Save(model.UserFromEntity(user)).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return emailTaken(r.db.WithContext(ctx), email)
}

func emailTaken(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&model.UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
