package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace    = "checador"
	rateLimitPrefix = "rate_limit"
)

// noExpiry is what TTL reports for a key that exists without a timeout.
const noExpiry time.Duration = -1

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	TTL(context.Context, string) *redis.DurationCmd
}

// Client wraps the few redis commands the API needs.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// New parses a redis:// URL and verifies connectivity.
func New(ctx context.Context, url string) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 3 * time.Second
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

// IncrWithTTL increments and sets the TTL on the first increment.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if c == nil || c.store == nil {
		return 0, errors.New("redis client not initialized")
	}
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if _, err := c.store.Expire(ctx, key, ttl).Result(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// Hit counts one request in the fixed window named by scope and reports the time left in it.
func (c *Client) Hit(ctx context.Context, scope string, window time.Duration) (int, time.Duration, error) {
	key := c.RateLimitKey(scope)
	count, err := c.IncrWithTTL(ctx, key, window)
	if err != nil {
		return 0, 0, err
	}
	ttl, err := c.store.TTL(ctx, key).Result()
	if err == nil && ttl == noExpiry {
		// The EXPIRE after the first INCR was lost; without it the window never closes.
		if err := c.store.Expire(ctx, key, window).Err(); err != nil {
			return int(count), window, err
		}
	}
	if err != nil || ttl < 0 {
		ttl = window
	}
	return int(count), ttl, nil
}

func (c *Client) RateLimitKey(scope string) string {
	return buildKey(rateLimitPrefix, scope)
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
