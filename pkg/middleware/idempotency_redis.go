package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"stayquest/pkg/metrics"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyCacheName = "idempotency"

// RedisIdempotencyStore shares replayable responses across instances.
type RedisIdempotencyStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl, prefix: "stayquest:idem:"}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveCache(idempotencyCacheName, "miss")
		return nil, false, nil
	}
	if err != nil {
		metrics.ObserveCache(idempotencyCacheName, "error")
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	metrics.ObserveCache(idempotencyCacheName, "hit")
	return &cached, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) error {
	response.CreatedAt = time.Now()
	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	// First writer wins when two requests race on the same key.
	if err := s.rdb.SetNX(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		metrics.ObserveCache(idempotencyCacheName, "error")
		return fmt.Errorf("redis setnx: %w", err)
	}
	metrics.ObserveCache(idempotencyCacheName, "set")
	return nil
}

func (s *RedisIdempotencyStore) Stop() {}
