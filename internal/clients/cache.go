package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/soft-m/softm-api/internal/platform/cache"
)

const cacheVersionKey = "clients:version"

// Cache keeps client records in Redis under versioned keys. A nil Cache, or
// one without a client, passes every read straight to the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Key composes the cache key for id under the current version.
func (c *Cache) Key(ctx context.Context, id string) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("clients:v%d:%s", ver, id), nil
}

// FetchClient returns the cached client or populates it with loader.
// Concurrent misses for the same key share one loader call. Redis failures
// degrade to a direct load.
func (c *Cache) FetchClient(ctx context.Context, id string, loader func(context.Context) (Client, error)) (Client, error) {
	if loader == nil {
		return Client{}, errors.New("clients: cache loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}
	key, err := c.Key(ctx, id)
	if err != nil {
		return loader(ctx)
	}
	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached Client
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
	}

	resultCh := c.group.DoChan(key, func() (interface{}, error) {
		client, err := loader(ctx)
		if err != nil {
			return Client{}, err
		}
		if raw, err := json.Marshal(client); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttl).Err()
		}
		return client, nil
	})
	select {
	case <-ctx.Done():
		return Client{}, ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return Client{}, res.Err
		}
		return res.Val.(Client), nil
	}
}

// Bump invalidates every cached client by moving to a new version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// InvalidateCache connects to the Redis at addr and bumps the client cache
// version. An empty addr is a no-op.
func InvalidateCache(ctx context.Context, addr string) error {
	client, err := cache.New(ctx, addr)
	if err != nil || client == nil {
		return err
	}
	defer client.Close()
	return NewCache(client, 0).Bump(ctx)
}
