package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersistedState is one stored blob
type PersistedState struct {
	Name      string    `gorm:"primaryKey;size:255"`
	Data      []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table name
func (PersistedState) TableName() string {
	return "persisted_states"
}

// NewPostgresConnection opens the database and applies pool settings
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.App.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	return db, nil
}

// PostgresStore keeps blobs in the persisted_states table
type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresStore wraps an open gorm connection
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row PersistedState
	result := s.db.WithContext(ctx).
		Raw("SELECT name, data, updated_at FROM persisted_states WHERE name = ?", key).
		Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return row.Data, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	err := s.db.WithContext(ctx).Exec(
		"INSERT INTO persisted_states (name, data, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at",
		key, data, s.now().UTC(),
	).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Update locks the row for the length of a transaction. A placeholder row is
// inserted first so that concurrent first writes also queue on the lock; it is
// rolled back with the transaction if fn fails.
func (s *PostgresStore) Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now().UTC()
		if err := tx.Exec(
			"INSERT INTO persisted_states (name, data, updated_at) VALUES (?, ?, ?) ON CONFLICT (name) DO NOTHING",
			key, []byte{}, now,
		).Error; err != nil {
			return err
		}

		var row PersistedState
		if err := tx.Raw("SELECT name, data, updated_at FROM persisted_states WHERE name = ? FOR UPDATE", key).
			Scan(&row).Error; err != nil {
			return err
		}

		next, err := fn(row.Data, len(row.Data) > 0)
		if err != nil {
			return err
		}

		return tx.Exec("UPDATE persisted_states SET data = ?, updated_at = ? WHERE name = ?", next, now, key).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM persisted_states WHERE name = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := pingTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
