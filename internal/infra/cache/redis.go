package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "taxcalc:"
	opTimeout = 500 * time.Millisecond
)

// Redis is a byte cache shared by every BFF replica. Redis failures are
// logged and reported as misses so that a cache outage never fails a
// calculation.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a value from Redis.
func (r *Redis) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// Set stores a value with the configured TTL.
func (r *Redis) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a value.
func (r *Redis) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		r.logger.Warn("redis delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Ping checks the connection, for readiness probes.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
