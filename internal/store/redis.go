package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a KV backed by a Redis instance. Keys are namespaced so several
// deployments can share one database.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis creates a Redis-backed KV
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{
		client:    client,
		namespace: namespace,
	}
}

func (r *Redis) key(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, true, nil
}

// Set stores the value without expiry; the user controls lifetime.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
