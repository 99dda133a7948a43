package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/migrations"
)

// SQLiteKV is a KVStore backed by a kv_entries table in a SQLite file.
type SQLiteKV struct {
	sqlDB *sql.DB
}

// OpenSQLiteKV opens (creating if needed) the SQLite database at path and
// applies the embedded migrations.
func OpenSQLiteKV(ctx context.Context, path string) (*SQLiteKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("repo.OpenSQLiteKV: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("repo.OpenSQLiteKV: create directory: %w", err)
	}

	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLiteKV: open: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo.OpenSQLiteKV: ping: %w", err)
	}
	if err := Migrate(ctx, goose.DialectSQLite3, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("repo.OpenSQLiteKV: %w", err)
	}
	return &SQLiteKV{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteKV) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the value stored under key.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.SQLiteKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.SQLiteKV.Get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts the value stored under key.
func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = CURRENT_TIMESTAMP`

	if _, err := s.sqlDB.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.SQLiteKV.Put: %w", err)
	}
	return nil
}

// Migrate applies every pending embedded migration to sqlDB.
func Migrate(ctx context.Context, dialect goose.Dialect, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(dialect, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
