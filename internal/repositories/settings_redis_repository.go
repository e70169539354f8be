package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const settingsKeyPrefix = "ksabeheer:settings:"

// RedisSettingsRepository is a Redis-backed implementation of
// SettingsRepository. Settings are plain string values; there is no TTL,
// they live until overwritten.
type RedisSettingsRepository struct {
	client *redis.Client
}

// NewRedisSettingsRepository connects to Redis and returns a settings
// repository backed by it. The connection is verified with a ping.
func NewRedisSettingsRepository(redisURL string) (*RedisSettingsRepository, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSettingsRepository{client: client}, nil
}

// Get returns the value for key, or an empty string when the key is unset.
func (r *RedisSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, settingsKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return val, nil
}

// Set stores the value for key.
func (r *RedisSettingsRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, settingsKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *RedisSettingsRepository) Close() error {
	return r.client.Close()
}
