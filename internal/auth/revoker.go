package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedTokenKeyPrefix = "liftboard-revoked-token||"

// RedisRevoker keeps revoked token IDs in redis until the token would have expired anyway.
type RedisRevoker struct {
	redisClient *redis.Client
}

func NewRedisRevoker(redisClient *redis.Client) *RedisRevoker {
	return &RedisRevoker{
		redisClient: redisClient,
	}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	if err := r.redisClient.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("store revoked token: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := r.redisClient.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return count > 0, nil
}
