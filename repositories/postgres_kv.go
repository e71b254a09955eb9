package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresKVStore implements KVStore on top of a single Postgres
// table. Values are stored as JSONB.
type PostgresKVStore struct {
	db *sql.DB
}

func NewPostgresKVStore(db *sql.DB) *PostgresKVStore {
	return &PostgresKVStore{db: db}
}

// EnsureSchema creates the backing table if it does not exist yet.
func (s *PostgresKVStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS finalist_state (
			namespace  TEXT        NOT NULL,
			key        TEXT        NOT NULL,
			value      JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, key)
		)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create finalist_state table: %w", err)
	}
	return nil
}

func (s *PostgresKVStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const query = `SELECT value FROM finalist_state WHERE namespace = $1 AND key = $2`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

func (s *PostgresKVStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	const query = `
		INSERT INTO finalist_state (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, namespace, key, value); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *PostgresKVStore) Delete(ctx context.Context, namespace, key string) error {
	const query = `DELETE FROM finalist_state WHERE namespace = $1 AND key = $2`

	if _, err := s.db.ExecContext(ctx, query, namespace, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *PostgresKVStore) ClearNamespace(ctx context.Context, namespace string) error {
	const query = `DELETE FROM finalist_state WHERE namespace = $1`

	if _, err := s.db.ExecContext(ctx, query, namespace); err != nil {
		return fmt.Errorf("failed to clear namespace %s: %w", namespace, err)
	}
	return nil
}
