package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a small cache-aside wrapper around Redis. A nil *Client is a
// disabled cache: every Get misses and every Set is a no-op, so callers
// never branch on whether caching is configured.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Client{rdb: rdb, ttl: ttl}
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	return payload, true
}

func (c *Client) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "err", err)
	}
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if err := c.rdb.Close(); err != nil {
		slog.Warn("cache close failed", "err", err)
	}
}

// ForecastKey names a cached forecast report for one snapshot version and
// horizon.
func ForecastKey(snapshotVersion string, months int) string {
	return fmt.Sprintf("qmatrix:forecast:%s:%d", snapshotVersion, months)
}
