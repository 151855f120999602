// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/payment-tracker/backend/internal/application/adapter"
)

// redisCacheService implements the adapter.CacheService interface on Redis.
type redisCacheService struct {
	client *redis.Client
}

// NewCacheService creates a new Redis-backed cache service instance.
func NewCacheService(client *redis.Client) adapter.CacheService {
	return &redisCacheService{
		client: client,
	}
}

// Get retrieves the raw value stored under key. A miss returns (nil, nil).
func (s *redisCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the given TTL.
func (s *redisCacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes key from the cache.
func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
