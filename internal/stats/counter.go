// Package stats keeps the best-effort count of live connections.
package stats

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

type Counter interface {
	Incr(ctx context.Context) (int64, error)
	Decr(ctx context.Context) (int64, error)
	Get(ctx context.Context) (int64, error)
}

// Memory counts connections of this process only.
type Memory struct{ n atomic.Int64 }

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Incr(context.Context) (int64, error) { return m.n.Add(1), nil }

func (m *Memory) Decr(context.Context) (int64, error) { return m.n.Add(-1), nil }

func (m *Memory) Get(context.Context) (int64, error) { return m.n.Load(), nil }

const defaultKey = "tabletop:connections"

// Redis shares the count between server processes through INCR/DECR on one key.
type Redis struct {
	rdb *redis.Client
	key string
}

func NewRedis(rdb *redis.Client) *Redis { return &Redis{rdb: rdb, key: defaultKey} }

// DialRedis connects to url and checks the server answers.
func DialRedis(ctx context.Context, url string) (*Redis, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("redis url required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(rdb), nil
}

func (r *Redis) Incr(ctx context.Context) (int64, error) {
	return r.rdb.Incr(ctx, r.key).Result()
}

func (r *Redis) Decr(ctx context.Context) (int64, error) {
	return r.rdb.Decr(ctx, r.key).Result()
}

func (r *Redis) Get(ctx context.Context) (int64, error) {
	n, err := r.rdb.Get(ctx, r.key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (r *Redis) Close() error { return r.rdb.Close() }
