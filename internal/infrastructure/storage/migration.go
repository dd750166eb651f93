package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{db: db, log: log}
}

// Run creates or updates the tables the postgres store needs
func (m *Migration) Run() error {
	m.log.Info("Running database auto-migrations")

	models := []interface{}{
		&PersistedState{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := m.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	m.log.Info("Database auto-migrations completed")
	return nil
}

// Stale blobs are swept by updated_at
func (m *Migration) createIndexes() error {
	return m.db.Exec("CREATE INDEX IF NOT EXISTS idx_persisted_states_updated_at ON persisted_states(updated_at)").Error
}
