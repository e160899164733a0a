package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

// refreshTokenRepository implements adapter.RefreshTokenStore.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance.
func NewRefreshTokenRepository(db *gorm.DB) adapter.RefreshTokenStore {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	row := &model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) IsActive(ctx context.Context, token string, now time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, now.UTC()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", result.Error)
	}
	return count > 0, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	return nil
}

// RevokeAllForUser returns how many live tokens were revoked.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND invalidated = ?", userID, false).
		Update("invalidated", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke user sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteExpired removes tokens that expired before the given instant,
// revoked or not.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", before.UTC()).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
