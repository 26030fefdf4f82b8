package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/glowbook/salon-platform/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// Catalog caches public, slug-addressed reads (service lists, salon
// pages). Writes to the catalog invalidate the whole slug prefix.
type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalog(client *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{client: client, ttl: ttl}
}

func (c *Catalog) key(slug, suffix string) string {
	return fmt.Sprintf("catalog:%s:%s", slug, suffix)
}

// Get unmarshals the cached value into dest. Returns false on miss or
// any Redis failure; callers always fall back to the database.
func (c *Catalog) Get(ctx context.Context, slug, suffix string, dest any) bool {
	if c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, c.key(slug, suffix)).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(raw), dest) == nil
}

func (c *Catalog) Set(ctx context.Context, slug, suffix string, value any) {
	if c.client == nil {
		return
	}

	b, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.client.Set(ctx, c.key(slug, suffix), b, c.ttl)
}

// Invalidate drops every cached entry for a salon slug.
func (c *Catalog) Invalidate(ctx context.Context, slug string) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, fmt.Sprintf("catalog:%s:*", slug), 50).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
