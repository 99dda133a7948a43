// Package app wires configuration to a ready-to-use event store. The HTTP
// server and the CLI both start here so they always agree on where events
// live.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/eventboard/internal/config"
	"github.com/pkordes/eventboard/internal/repo"
	"github.com/pkordes/eventboard/internal/service"
)

// Store is an EventStore together with the backend resources it holds open.
type Store struct {
	*service.EventStore

	closers []func() error
}

// Close releases the backend. It is safe to call on a nil Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// OpenKV opens the key-value backend selected by cfg.Driver.
// The returned close function is never nil.
func OpenKV(ctx context.Context, cfg config.StorageConfig) (repo.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return repo.NewMemoryKV(), noop, nil

	case config.DriverFile, "":
		kv, err := repo.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenKV: %w", err)
		}
		return kv, noop, nil

	case config.DriverSQLite:
		kv, err := repo.OpenSQLiteKV(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenKV: %w", err)
		}
		return kv, kv.Close, nil

	case config.DriverPostgres:
		pool, err := repo.OpenPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenKV: %w", err)
		}
		return repo.NewPostgresKV(pool), func() error { pool.Close(); return nil }, nil

	case config.DriverRedis:
		client, err := repo.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, fmt.Errorf("app.OpenKV: %w", err)
		}
		return repo.NewRedisKV(client, cfg.RedisPrefix), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("app.OpenKV: unknown storage driver %q", cfg.Driver)
	}
}

// OpenStore opens the configured backend and loads the persisted collection.
func OpenStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*Store, error) {
	kv, closeKV, err := OpenKV(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Store{
		EventStore: service.NewEventStore(repo.NewEventRepo(kv, cfg.Key, log), nil),
		closers:    []func() error{closeKV},
	}
	if err := s.Load(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("app.OpenStore: %w", err)
	}
	if log != nil {
		log.InfoContext(ctx, "event store ready",
			"driver", cfg.Driver,
			"key", cfg.Key,
			"events", s.Len(),
		)
	}
	return s, nil
}
