package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// GetOrLoadJSON caches the JSON encoding of the loader's result.
// A nil result is cached as "null" and returned as nil.
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(c *Cache, ctx context.Context, key string, ttl time.Duration, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Put(ctx, key, b, ttl)
	return nil
}
