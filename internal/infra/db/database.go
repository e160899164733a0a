// Package db provides database and cache connection management.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/transfer-desk/backend/config"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

const (
	sqlitePrefix = "sqlite://"
	pingTimeout  = 5 * time.Second
)

// Database owns the ledger's GORM connection.
type Database struct {
	db      *gorm.DB
	dialect string
}

// Connect opens the ledger database named by cfg.URL. A "sqlite://" URL
// selects an embedded SQLite file, anything else is handed to PostgreSQL.
func Connect(cfg *config.DatabaseConfig) (*Database, error) {
	dialector, dialect := dialectorFor(cfg.URL)

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if dialect == "sqlite" {
		// SQLite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	d := &Database{db: gormDB, dialect: dialect}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := d.Ping(ctx); err != nil {
		return nil, err
	}

	slog.Info("Database connection established",
		"dialect", dialect,
		"max_open_conns", cfg.MaxOpenConns,
	)
	return d, nil
}

func dialectorFor(url string) (gorm.Dialector, string) {
	if path, ok := strings.CutPrefix(url, sqlitePrefix); ok {
		return sqlite.Open(path), "sqlite"
	}
	return postgres.Open(url), "postgres"
}

// NewDatabase wraps an already opened GORM connection.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db, dialect: db.Dialector.Name()}
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping is the readiness probe for the ledger store.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		slog.Error("Database health check failed", "dialect", d.dialect, "error", err)
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}

// Migrate creates or updates the tables of every persisted model.
func (d *Database) Migrate() error {
	err := d.db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.ClientModel{},
		&model.TransactionModel{},
		&model.DailyBalanceModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
