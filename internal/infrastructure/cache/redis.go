package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(host, password string, db int) *RedisClient {
	return &RedisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:         host,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

func (r *RedisClient) Connect(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Refresh-token store: one active refresh token per user, revoked on logout.

func refreshTokenKey(userID string) string {
	return "refresh_token:" + userID
}

func (r *RedisClient) StoreRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(userID), token, ttl).Err()
}

// ValidateRefreshToken reports whether token is the currently issued refresh
// token for userID.
func (r *RedisClient) ValidateRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	stored, err := r.Client.Get(ctx, refreshTokenKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

func (r *RedisClient) RevokeRefreshToken(ctx context.Context, userID string) error {
	return r.Client.Del(ctx, refreshTokenKey(userID)).Err()
}
