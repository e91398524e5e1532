package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// KeyPrefix namespaces every key this process writes.
const KeyPrefix = "booking:"

// Cache is a read-through redis cache. Redis failures trip a breaker and
// degrade to calling the loader directly. A nil *Cache is valid and never caches.
type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
	cb  *gobreaker.CircuitBreaker
	log *zap.Logger
}

func New(addr, pass string, db int, l *zap.Logger) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DB:           db,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  300 * time.Millisecond,
		WriteTimeout: 300 * time.Millisecond,
	}), l)
}

func NewWithClient(rdb *redis.Client, l *zap.Logger) *Cache {
	if l == nil {
		l = zap.NewNop()
	}
	c := &Cache{RDB: rdb, log: l}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("circuit breaker state changed",
				zap.String("name", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
	return c
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	v, err := c.cb.Execute(func() (any, error) {
		b, err := c.RDB.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		if !errors.Is(err, gobreaker.ErrOpenState) {
			c.log.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	b, _ := v.([]byte)
	return b, b != nil
}

func (c *Cache) set(ctx context.Context, key string, b []byte, ttl time.Duration) {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.RDB.Set(ctx, key, b, ttl).Err()
	})
	if err != nil && !errors.Is(err, gobreaker.ErrOpenState) {
		c.log.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	key = KeyPrefix + key
	if b, ok := c.get(ctx, key); ok {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		c.set(ctx, key, b, ttl)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Put overwrites key unconditionally. Used by the warmer job.
func (c *Cache) Put(ctx context.Context, key string, b []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	c.set(ctx, KeyPrefix+key, b, ttl)
}

// Purge deletes every key under KeyPrefix+prefix and returns how many went.
func (c *Cache) Purge(ctx context.Context, prefix string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	var n int64
	iter := c.RDB.Scan(ctx, 0, KeyPrefix+prefix+"*", 200).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		d, err := c.RDB.Del(ctx, batch...).Result()
		n += d
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return n, err
	}
	return n, flush()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}
