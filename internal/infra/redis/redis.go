package redis

import (
	"context"
	"fmt"
	"time"

	"vidverse/internal/config"
	"vidverse/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// TokenBlacklist 基于 Redis 的 access token 吊销表（key = 前缀 + jti）
type TokenBlacklist struct {
	rdb    *redis.Client
	prefix string
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb, prefix: "vidverse:revoked:"}
}

// Revoke 吊销 jti 直到 exp
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return b.rdb.SetNX(ctx, b.prefix+jti, "1", ttl).Err()
}

// IsRevoked 检查 jti 是否已吊销
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// JSONCache 简单的 JSON 值缓存
type JSONCache struct {
	rdb *redis.Client
}

func NewJSONCache(rdb *redis.Client) *JSONCache {
	return &JSONCache{rdb: rdb}
}

// Get 命中返回 true；未命中返回 false 且 err 为 nil
func (c *JSONCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *JSONCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

func (c *JSONCache) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}
