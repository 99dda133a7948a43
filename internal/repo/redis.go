package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/pkordes/eventboard/internal/domain"
)

// RedisKV is a KVStore backed by plain Redis string keys.
// Keys are namespaced with prefix so several boards can share one database.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
		PoolSize: 10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("repo.DialRedis: ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisKV) key(k string) string { return r.prefix + k }

// Get returns the value stored under key.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("repo.RedisKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.RedisKV.Get: %w", err)
	}
	return v, nil
}

// Put stores value under key with no expiry.
func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisKV.Put: %w", err)
	}
	return nil
}
