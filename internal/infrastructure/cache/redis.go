package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"prdashboard/internal/domain/assignment"
)

const redisPrefix = "prdashboard:"

// Redis is the shared tier. Tables are stored as JSON under a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedis(ctx context.Context, addr, password string, ttl time.Duration, log *zap.Logger) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis address missing")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	log = log.With(zap.String("component", "redis"))
	log.Info("redis client connected", zap.String("addr", addr))
	return &Redis{client: client, ttl: ttl, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (assignment.Table, bool, error) {
	raw, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug("cache miss", zap.String("key", key))
		return assignment.Table{}, false, nil
	}
	if err != nil {
		return assignment.Table{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var t assignment.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return assignment.Table{}, false, fmt.Errorf("decode cached table %s: %w", key, err)
	}
	return t, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, t assignment.Table) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", key, err)
	}
	if err := r.client.Set(ctx, redisPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
