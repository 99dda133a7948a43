package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/eventboard/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresKV is a KVStore backed by the kv_entries table.
// The table is created by the embedded goose migrations (see package migrations).
type PostgresKV struct {
	db db
}

// NewPostgresKV constructs a PostgresKV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) *PostgresKV {
	return &PostgresKV{db: db}
}

// OpenPostgresPool connects to databaseURL, verifies the connection and
// applies the embedded migrations. The caller owns the returned pool.
func OpenPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	// New does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenPostgresPool: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgresPool: ping: %w", err)
	}

	// goose drives database/sql, so migrations run over a short-lived
	// database/sql handle on the pgx driver.
	if err := migratePostgres(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgresPool: %w", err)
	}
	return pool, nil
}

func migratePostgres(ctx context.Context, databaseURL string) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration handle: %w", err)
	}
	defer sqlDB.Close()
	return Migrate(ctx, goose.DialectPostgres, sqlDB)
}

// Get returns the value stored under key.
func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.PostgresKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.PostgresKV.Get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts the value stored under key.
func (r *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": string(value),
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PostgresKV.Put: %w", err)
	}
	return nil
}
