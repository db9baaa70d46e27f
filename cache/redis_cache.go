package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCache(addr, password string, db int, logger *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{client: client, logger: logger}
}

func (r *RedisCache) Set(key string, value interface{}, expiration time.Duration) error {
	err := r.client.Set(context.Background(), key, value, expiration).Err()
	if err != nil {
		r.logger.Error("Failed to set cache key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set key %s in cache: %w", key, err)
	}
	r.logger.Debug("Cache key set", zap.String("key", key), zap.Duration("expiration", expiration))
	return nil
}

func (r *RedisCache) Get(key string) (interface{}, error) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err == redis.Nil {
		r.logger.Debug("Cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get cache key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to get key %s from cache: %w", key, err)
	}
	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *RedisCache) Delete(key string) error {
	err := r.client.Del(context.Background(), key).Err()
	if err != nil {
		r.logger.Error("Failed to delete cache key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete key %s from cache: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Exists(key string) (bool, error) {
	result, err := r.client.Exists(context.Background(), key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache key existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("failed to check existence of key %s in cache: %w", key, err)
	}
	return result > 0, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
