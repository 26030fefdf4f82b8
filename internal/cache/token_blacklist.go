package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist invalidates JWTs before their natural expiry (logout).
// Keys live exactly as long as the token would have.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, "token:blacklist:"+jti, "1", ttl).Err()
}

// IsBlacklisted fails open: if Redis is unreachable the token is accepted,
// since its signature and expiry were already verified.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, jti string) bool {
	if b == nil || b.client == nil {
		return false
	}

	_, err := b.client.Get(ctx, "token:blacklist:"+jti).Result()
	return err == nil
}
