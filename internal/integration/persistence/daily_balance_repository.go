package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

// dailyBalanceRepository implements the adapter.DailyBalanceRepository interface.
type dailyBalanceRepository struct {
	db *gorm.DB
}

// NewDailyBalanceRepository creates a new daily balance repository instance.
func NewDailyBalanceRepository(db *gorm.DB) adapter.DailyBalanceRepository {
	return &dailyBalanceRepository{
		db: db,
	}
}

// FindByDate retrieves the entries of one date in creation order.
func (r *dailyBalanceRepository) FindByDate(ctx context.Context, date valueobject.CalendarDate) ([]*entity.DailyBalance, error) {
	var balanceModels []model.DailyBalanceModel
	result := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at ASC, name ASC").
		Find(&balanceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	balances := make([]*entity.DailyBalance, len(balanceModels))
	for i := range balanceModels {
		balances[i] = balanceModels[i].ToEntity()
	}
	return balances, nil
}

// FindByID retrieves an entry by its ID.
func (r *dailyBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DailyBalance, error) {
	var balanceModel model.DailyBalanceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&balanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDailyBalanceNotFound
		}
		return nil, result.Error
	}
	return balanceModel.ToEntity(), nil
}

// Upsert inserts the entry or updates the amount of the existing (date, name) entry.
// The stored ID and creation time are copied back into balance.
func (r *dailyBalanceRepository) Upsert(ctx context.Context, balance *entity.DailyBalance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(model.DailyBalanceFromEntity(balance))
		if result.Error != nil {
			return result.Error
		}

		var stored model.DailyBalanceModel
		if err := tx.Where("date = ? AND name = ?", balance.Date, balance.Name).First(&stored).Error; err != nil {
			return err
		}
		balance.ID = stored.ID
		balance.CreatedAt = stored.CreatedAt
		return nil
	})
}

// ExistsByDateAndName checks whether another entry of the date already uses name.
func (r *dailyBalanceRepository) ExistsByDateAndName(ctx context.Context, date valueobject.CalendarDate, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.DailyBalanceModel{}).
		Where("date = ? AND name = ? AND id <> ?", date, name, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing entry.
func (r *dailyBalanceRepository) Update(ctx context.Context, balance *entity.DailyBalance) error {
	result := r.db.WithContext(ctx).
		Model(&model.DailyBalanceModel{}).
		Where("id = ?", balance.ID).
		Updates(map[string]any{
			"name":       balance.Name,
			"amount":     balance.Amount,
			"updated_at": balance.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrDailyBalanceNotFound
	}
	return nil
}
