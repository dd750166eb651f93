package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

var (
	// ErrNotFound is returned by Load when nothing is stored under the key
	ErrNotFound = errors.New("storage: key not found")
	// ErrConflict is returned when an update keeps losing races with other writers
	ErrConflict = errors.New("storage: too many concurrent updates")
)

// Store persists opaque blobs keyed by name
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// Update runs fn on the blob under key and stores what it returns. Concurrent
	// updates of one key, from this process or another, never interleave. found
	// is false when nothing is stored; an error from fn aborts without writing.
	Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error
	Ping(ctx context.Context) error
	Close() error
}

// Key namespaces a named store under a browser session
func Key(store, sessionID string) string {
	return store + ":" + sessionID
}

// Open builds the store selected by cfg.Storage.Driver
func Open(cfg *config.Config, log logrus.FieldLogger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage; session state is lost on restart")
		return NewMemoryStore(), nil
	case config.StorageDriverRedis:
		client, err := NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.GetRedisAddr()).Info("Redis storage connected")
		return NewRedisStore(client, cfg.Storage.TTL), nil
	case config.StorageDriverPostgres:
		db, err := NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		if err := NewMigration(db, log).Run(); err != nil {
			return nil, err
		}
		log.WithField("host", cfg.Database.Host).Info("Postgres storage connected")
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func pingTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 3*time.Second)
}

// ErrMalformed is returned by LoadJSON when the stored blob cannot be decoded
var ErrMalformed = errors.New("storage: malformed blob")

// SaveJSON encodes v and stores it under key
func SaveJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Save(ctx, key, data)
}

// LoadJSON decodes the blob under key into v. It returns ErrNotFound or ErrMalformed for unusable state.
func LoadJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// UpdateJSON decodes the blob under key, lets fn change it and stores the
// result in one Update. A missing or malformed blob decodes as the zero value.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(v *T) error) error {
	return s.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		var v T
		if found {
			if err := json.Unmarshal(current, &v); err != nil {
				var zero T
				v = zero
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		return data, nil
	})
}
