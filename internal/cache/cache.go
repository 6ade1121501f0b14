package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// GetUploadDetails returns nil on a cache miss.
func (c *Cache) GetUploadDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for upload #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String(), false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// GetEtagUploadDetails returns an empty string on a cache miss.
func (c *Cache) GetEtagUploadDetails(ctx context.Context, id uuid.UUID) (string, error) {
	val, err := c.client.Get(ctx, getCacheKey(id.String(), true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetUploadDetails is best effort: failures are logged and swallowed.
func (c *Cache) SetUploadDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for upload #%s, valid until %s...", id, validUntil.Format(time.RFC1123))
	c.set(ctx, getCacheKey(id.String(), false), data, validUntil)
}

func (c *Cache) SetEtagUploadDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.set(ctx, getCacheKey(id.String(), true), etag, validUntil)
}

func (c *Cache) DeleteUploadDetails(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting entry in cache for upload #%s...", id)
	return c.del(ctx, getCacheKey(id.String(), false))
}

func (c *Cache) DeleteEtagUploadDetails(ctx context.Context, id uuid.UUID) error {
	return c.del(ctx, getCacheKey(id.String(), true))
}

func (c *Cache) set(ctx context.Context, key string, value any, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for %q: %v", key, err)
	}
}

func (c *Cache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string, etag bool) string {
	if etag {
		return "upload:" + id + ":etag"
	}
	return "upload:" + id
}
