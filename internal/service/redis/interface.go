package redis

import (
	"context"
	"time"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetExpire(ctx context.Context, key string, ttl time.Duration) error
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	CacheSnapshot(ctx context.Context, cacheKey string, data interface{}, ttl time.Duration) error
	GetSnapshot(ctx context.Context, cacheKey string, dest interface{}) error
	InvalidateSnapshots(ctx context.Context) error

	CacheQualityFeed(ctx context.Context, data interface{}, ttl time.Duration) error
	GetQualityFeed(ctx context.Context, dest interface{}) error

	Keys(ctx context.Context, pattern string) ([]string, error)
	Health(ctx context.Context) error
	Close() error
}
