// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Omit("Client").Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByClient retrieves every transaction of a client, oldest date first.
func (r *transactionRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// FindAllWithClients retrieves every transaction joined with its client.
func (r *transactionRepository) FindAllWithClients(ctx context.Context) ([]*entity.TransactionWithClient, error) {
	return r.findWithClients(r.db.WithContext(ctx))
}

// FindWithClientsUntil retrieves joined transactions dated on or before end.
func (r *transactionRepository) FindWithClientsUntil(ctx context.Context, end valueobject.CalendarDate) ([]*entity.TransactionWithClient, error) {
	return r.findWithClients(r.db.WithContext(ctx).Where("transactions.date <= ?", end))
}

// FindWithClientsBetween retrieves joined transactions dated inside [from, to].
func (r *transactionRepository) FindWithClientsBetween(ctx context.Context, from, to valueobject.CalendarDate) ([]*entity.TransactionWithClient, error) {
	return r.findWithClients(r.db.WithContext(ctx).
		Where("transactions.date >= ? AND transactions.date <= ?", from, to))
}

// findWithClients runs a joined query. Transactions of soft-deleted clients are
// excluded; transactions whose client row is missing come back with a nil Client.
func (r *transactionRepository) findWithClients(query *gorm.DB) ([]*entity.TransactionWithClient, error) {
	var transactionModels []model.TransactionModel
	result := query.
		Select("transactions.*").
		Joins("LEFT JOIN clients ON clients.id = transactions.client_id").
		Where("clients.deleted_at IS NULL").
		Preload("Client").
		Order("transactions.date DESC, transactions.created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithClient, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithClient()
	}
	return transactions, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Omit("Client").Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// archiveDeleteBatch keeps each DELETE under the bind parameter limits of
// SQLite and PostgreSQL.
const archiveDeleteBatch = 500

type archivedRow struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	ClientName  string
	AmountSent  decimal.Decimal
	AmountToPay decimal.Decimal
	AmountPaid  decimal.Decimal
}

// ArchiveBefore collapses every transaction dated strictly before cutoff into
// one summary row per client. Reading the rows, deleting exactly those rows and
// inserting the summaries happen in one database transaction, and on
// PostgreSQL the read rows are locked until commit.
func (r *transactionRepository) ArchiveBefore(
	ctx context.Context,
	cutoff valueobject.CalendarDate,
	createdBy *uuid.UUID,
	summarize adapter.ArchiveSummarizer,
) (*adapter.ArchiveResult, error) {
	result := &adapter.ArchiveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&model.TransactionModel{}).
			Select(`transactions.id AS id,
				transactions.client_id AS client_id,
				clients.name AS client_name,
				transactions.amount_sent AS amount_sent,
				transactions.amount_to_pay AS amount_to_pay,
				transactions.amount_paid AS amount_paid`).
			Joins("JOIN clients ON clients.id = transactions.client_id").
			Where("transactions.date < ?", cutoff).
			Order("clients.name ASC, transactions.id ASC")
		if createdBy != nil {
			query = query.Where("clients.created_by = ?", *createdBy)
		}
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "transactions"}})
		}

		var rows []archivedRow
		if err := query.Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(rows))
		byClient := make(map[uuid.UUID]*adapter.ClientTotals)
		for _, row := range rows {
			ids = append(ids, row.ID)
			totals, ok := byClient[row.ClientID]
			if !ok {
				totals = &adapter.ClientTotals{ClientID: row.ClientID, ClientName: row.ClientName}
				byClient[row.ClientID] = totals
				result.Clients = append(result.Clients, totals)
			}
			totals.AmountSent = totals.AmountSent.Add(row.AmountSent)
			totals.AmountToPay = totals.AmountToPay.Add(row.AmountToPay)
			totals.AmountPaid = totals.AmountPaid.Add(row.AmountPaid)
			totals.TransactionCount++
		}

		for start := 0; start < len(ids); start += archiveDeleteBatch {
			end := min(start+archiveDeleteBatch, len(ids))
			deleted := tx.Where("id IN ?", ids[start:end]).Delete(&model.TransactionModel{})
			if deleted.Error != nil {
				return deleted.Error
			}
			result.Deleted += deleted.RowsAffected
		}

		for _, totals := range result.Clients {
			if err := tx.Omit("Client").Create(model.TransactionFromEntity(summarize(totals))).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to archive transactions: %w", err)
	}
	return result, nil
}
