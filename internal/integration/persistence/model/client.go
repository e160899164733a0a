package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transfer-desk/backend/internal/domain/entity"
)

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(100);not null;index"`
	CreatedBy *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	status := entity.ActiveStatus()
	if m.DeletedAt.Valid {
		status = entity.DeletedStatus(m.DeletedAt.Time)
	}

	return &entity.Client{
		ID:        m.ID,
		Name:      m.Name,
		Status:    status,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ClientFromEntity creates a ClientModel from a domain Client entity.
func ClientFromEntity(client *entity.Client) *ClientModel {
	var deletedAt gorm.DeletedAt
	if at, ok := client.Status.DeletedAt(); ok {
		deletedAt = gorm.DeletedAt{Time: at, Valid: true}
	}

	return &ClientModel{
		ID:        client.ID,
		Name:      client.Name,
		CreatedBy: client.CreatedBy,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
