package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache backs the Cache interface with Redis and carries a redsync
// instance for per-key leases.
type RedisCache struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("Redis URL must be provided")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Msg("Successfully connected to Redis cache")
	rs := redsync.New(goredis.NewPool(client))
	return &RedisCache{client: client, rs: rs}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get value from cache: %w", err)
	}
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// WithLease runs fn under a named redsync mutex with the given expiry. The
// mutex is released afterwards; if the process dies mid-run the expiry frees
// it.
func (r *RedisCache) WithLease(ctx context.Context, lockName string, ttl time.Duration, fn func() error) error {
	mutex := r.rs.NewMutex(lockName, redsync.WithExpiry(ttl))

	if err := mutex.LockContext(ctx); err != nil {
		return err
	}

	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("lock", lockName).Msg("Failed to unlock mutex")
		}
	}()

	return fn()
}
