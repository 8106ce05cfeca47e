package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisRevocationList denylists token IDs until their natural expiry. Keys
// carry a TTL equal to the token's remaining lifetime, so the list never
// outgrows the set of still-live tokens.
type RedisRevocationList struct {
	client *redis.Client
}

func NewRedisRevocationList(client *redis.Client) ports.RevocationList {
	return &RedisRevocationList{client: client}
}

func (r *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		// already expired, nothing to denylist
		return nil
	}

	if err := r.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked: %w", err)
	}

	return n > 0, nil
}

func revocationKey(tokenID string) string {
	return "video:revoked:" + tokenID
}
