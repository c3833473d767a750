package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bracket:"

// Redis keeps each snapshot as a JSON string that expires after ttl of
// inactivity. A zero ttl never expires.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFromURL(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedis(client, ttl), nil
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Load(ctx context.Context, code string) (Snapshot, error) {
	raw, err := r.client.Get(ctx, keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load %s: %w", code, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", code, err)
	}
	return snap, nil
}

func (r *Redis) Save(ctx context.Context, code string, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode %s: %w", code, err)
	}
	return r.client.Set(ctx, keyPrefix+code, raw, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, keyPrefix+code).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
