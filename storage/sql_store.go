package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor - общий интерфейс для *sql.DB и *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type sqlStore struct {
	db SQLExecutor
}

// NewSQLStore returns a KVStore backed by the kv_store table.
// The queries are valid for both PostgreSQL and SQLite.
func NewSQLStore(db SQLExecutor) KVStore {
	return &sqlStore{db: db}
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, handleSQLError(err, key)
	}
	return value, true, nil
}

func (s *sqlStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return handleSQLError(err, key)
	}
	return nil
}

func handleSQLError(err error, key string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 42P01: undefined_table - миграции не применены.
		if pqErr.Code == "42P01" {
			return fmt.Errorf("%w: kv_store table is missing (run migrations): %v", ErrUnavailable, pqErr.Message)
		}
		return fmt.Errorf("%w: key %q: postgres error %s: %v", ErrUnavailable, key, pqErr.Code, pqErr.Message)
	}
	return fmt.Errorf("%w: key %q: %v", ErrUnavailable, key, err)
}
