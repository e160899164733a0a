package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

// clientRepository implements the adapter.ClientRepository interface.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance.
func NewClientRepository(db *gorm.DB) adapter.ClientRepository {
	return &clientRepository{
		db: db,
	}
}

// Create creates a new client in the database.
func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(model.ClientFromEntity(client)).Error
}

// FindByID retrieves a client by its ID, including soft-deleted clients.
func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var clientModel model.ClientModel
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&clientModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrClientNotFound
		}
		return nil, result.Error
	}
	return clientModel.ToEntity(), nil
}

// ListActive retrieves all active clients ordered by name.
func (r *clientRepository) ListActive(ctx context.Context) ([]*entity.Client, error) {
	return r.Search(ctx, "", 0)
}

// Search retrieves active clients whose name contains term, ordered by name.
func (r *clientRepository) Search(ctx context.Context, term string, limit int) ([]*entity.Client, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if term = strings.TrimSpace(term); term != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var clientModels []model.ClientModel
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]*entity.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToEntity()
	}
	return clients, nil
}

// ExistsActiveByName checks, case-insensitively, whether an active client already uses name.
func (r *clientRepository) ExistsActiveByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.ClientModel{}).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists name and status changes.
func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	clientModel := model.ClientFromEntity(client)
	result := r.db.WithContext(ctx).Unscoped().
		Model(&model.ClientModel{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"name":       clientModel.Name,
			"updated_at": clientModel.UpdatedAt,
			"deleted_at": clientModel.DeletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrClientNotFound
	}
	return nil
}
