package mock

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is an in-memory SQLite ledger shared by every scenario. Tables are
// keyed by name so steps can address them the way features spell them.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database named name on first use and migrates
// models into it. Later calls return the same instance.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		var err error
		if db, err = open(name, models); err != nil {
			panic(fmt.Sprintf("failed to open test database: %v", err))
		}
	})
	return db
}

func open(name string, models map[string]any) (*Db, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps the memory database alive between scenarios.
	sqlDB.SetMaxOpenConns(1)

	if err := conn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return nil, err
	}

	d := &Db{DbConn: conn, models: models}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Db) migrate() error {
	for _, table := range d.tables() {
		model := d.models[table]
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// ClearDB empties every table, soft-deleted rows included.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, table := range d.tables() {
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Unscoped().
				Delete(d.models[table]).Error
			if err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// Count returns the number of rows in table, soft-deleted rows included,
// matching every column/value pair of criteria.
func (d *Db) Count(table string, criteria map[string]any) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	query := d.DbConn.Unscoped().Model(model)
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (d *Db) tables() []string {
	names := make([]string, 0, len(d.models))
	for name := range d.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
