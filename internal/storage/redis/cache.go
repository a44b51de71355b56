package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) *Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	return &Client{client}
}

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, data, expiration).Err()
}

func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// CacheReport stores a finished report keyed by its normalized URL, so
// repeated audits of the same site within the TTL skip the network.
func (c *Client) CacheReport(ctx context.Context, normalizedURL string, report interface{}, ttl time.Duration) error {
	return c.SetJSON(ctx, reportKey(normalizedURL), report, ttl)
}

func (c *Client) GetCachedReport(ctx context.Context, normalizedURL string, dest interface{}) error {
	return c.GetJSON(ctx, reportKey(normalizedURL), dest)
}

func reportKey(normalizedURL string) string {
	return fmt.Sprintf("audit:report:%s", normalizedURL)
}
