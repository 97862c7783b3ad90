package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
)

// RedisCache хранит графики в Redis в виде JSON
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает кэш поверх Redis по адресу addr
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

// Ping проверяет доступность Redis
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get читает график; ошибки Redis считаются промахом
func (r *RedisCache) Get(ctx context.Context, key string) (*calculations.ScheduleResult, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return nil, false
	}

	var result calculations.ScheduleResult
	if err := json.Unmarshal(val, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis value is not a schedule")
		return nil, false
	}
	return &result, true
}

// Set сохраняет график с TTL
func (r *RedisCache) Set(ctx context.Context, key string, result *calculations.ScheduleResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisCache) Close() error {
	return r.client.Close()
}
