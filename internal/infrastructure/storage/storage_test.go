package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "cart-storage:abc", Key("cart-storage", "abc"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`[1,2]`)
	require.NoError(t, s.Save(ctx, "k", blob))
	blob[0] = 'x'

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStore_RoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedis(t)

	_, err := s.Load(ctx, "cart-storage:s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "cart-storage:s1", []byte(`{"items":[]}`)))
	assert.Equal(t, time.Hour, mr.TTL("cart-storage:s1"))

	got, err := s.Load(ctx, "cart-storage:s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))

	mr.FastForward(2 * time.Hour)
	_, err = s.Load(ctx, "cart-storage:s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DeleteAndPing(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedis(t)

	require.NoError(t, s.Save(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, s.Ping(ctx))

	mr.SetError("server down")
	err := s.Save(ctx, "k", []byte("v"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO persisted_states (name, data, updated_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO UPDATE`)).
		WithArgs("cart-storage:s1", []byte(`[]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), "cart-storage:s1", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Load(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	rows := sqlmock.NewRows([]string{"name", "data", "updated_at"}).
		AddRow("wishlist-storage:s1", []byte(`["p-1"]`), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, data, updated_at FROM persisted_states WHERE name = $1`)).
		WithArgs("wishlist-storage:s1").
		WillReturnRows(rows)

	got, err := s.Load(context.Background(), "wishlist-storage:s1")
	require.NoError(t, err)
	assert.Equal(t, `["p-1"]`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, data, updated_at FROM persisted_states`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"name", "data", "updated_at"}))

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM persisted_states WHERE name = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var out []string
	assert.ErrorIs(t, LoadJSON(ctx, s, "k", &out), ErrNotFound)

	require.NoError(t, SaveJSON(ctx, s, "k", []string{"a", "b"}))
	require.NoError(t, LoadJSON(ctx, s, "k", &out))
	assert.Equal(t, []string{"a", "b"}, out)

	require.NoError(t, s.Save(ctx, "k", []byte("{not json")))
	assert.ErrorIs(t, LoadJSON(ctx, s, "k", &out), ErrMalformed)
}

func appendByte(b byte) func([]byte, bool) ([]byte, error) {
	return func(current []byte, found bool) ([]byte, error) {
		return append(current, b), nil
	}
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Update(ctx, "k", func(current []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		return []byte("a"), nil
	}))
	require.NoError(t, s.Update(ctx, "k", appendByte('b')))

	boom := errors.New("boom")
	err := s.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ab", string(got))
}

func TestRedisStore_UpdateRetriesOnConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedis(t)
	require.NoError(t, s.Save(ctx, "k", []byte("a")))

	calls := 0
	err := s.Update(ctx, "k", func(current []byte, found bool) ([]byte, error) {
		calls++
		if calls == 1 {
			// Another writer lands between our read and our write.
			require.NoError(t, s.client.Set(ctx, "k", "ax", 0).Err())
		}
		return append(current, 'b'), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "axb", got)
	assert.Equal(t, time.Hour, mr.TTL("k"))
}

func TestRedisStore_UpdateGivesUpAfterRepeatedConflicts(t *testing.T) {
	ctx := context.Background()
	s, _ := setupRedis(t)

	err := s.Update(ctx, "k", func(current []byte, found bool) ([]byte, error) {
		require.NoError(t, s.client.Set(ctx, "k", "other", 0).Err())
		return []byte("mine"), nil
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPostgresStore_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO persisted_states (name, data, updated_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`)).
		WithArgs("cart-storage:s1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, data, updated_at FROM persisted_states WHERE name = $1 FOR UPDATE`)).
		WithArgs("cart-storage:s1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "data", "updated_at"}).
			AddRow("cart-storage:s1", []byte(`a`), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE persisted_states SET data = $1, updated_at = $2 WHERE name = $3`)).
		WithArgs([]byte(`ab`), sqlmock.AnyArg(), "cart-storage:s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Update(context.Background(), "cart-storage:s1", appendByte('b')))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewPostgresStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO persisted_states`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "data", "updated_at"}).
			AddRow("k", []byte{}, time.Now()))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.Update(context.Background(), "k", func(current []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	add := func(v string) func(*[]string) error {
		return func(items *[]string) error {
			*items = append(*items, v)
			return nil
		}
	}

	require.NoError(t, UpdateJSON(ctx, s, "k", add("a")))
	require.NoError(t, UpdateJSON(ctx, s, "k", add("b")))

	var out []string
	require.NoError(t, LoadJSON(ctx, s, "k", &out))
	assert.Equal(t, []string{"a", "b"}, out)

	require.NoError(t, s.Save(ctx, "k", []byte(`{"broken`)))
	require.NoError(t, UpdateJSON(ctx, s, "k", add("c")))
	require.NoError(t, LoadJSON(ctx, s, "k", &out))
	assert.Equal(t, []string{"c"}, out)
}
