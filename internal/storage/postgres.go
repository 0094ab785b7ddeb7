package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the Postgres implementation of Store, backed by the
// kv_store table created by the goose migrations.
type PostgresStore struct {
	db db
}

// NewPostgresStore constructs a Store backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStore(db db) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

// Get retrieves the value for key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv_store WHERE key = @key`

	var value []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage.PostgresStore.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("storage.PostgresStore.Set: %w", err)
	}
	return nil
}

// Delete removes key. Absent keys are not an error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE key = @key`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("storage.PostgresStore.Delete: %w", err)
	}
	return nil
}

// List returns all keys with the given prefix in lexicographic order.
func (s *PostgresStore) List(ctx context.Context, prefix string) ([]string, error) {
	const q = `SELECT key FROM kv_store WHERE key LIKE @pattern || '%' ORDER BY key`

	rows, err := s.db.Query(ctx, q, pgx.NamedArgs{"pattern": prefix})
	if err != nil {
		return nil, fmt.Errorf("storage.PostgresStore.List: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage.PostgresStore.List: scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.PostgresStore.List: rows: %w", err)
	}

	return keys, nil
}
