package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hotel-users-api/config"
)

const keyPrefix = "login:fail:"

// counterStore is the part of *redis.Client the throttle needs.
type counterStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Throttle counts failed logins per email inside a fixed window.
type Throttle struct {
	rdb         counterStore
	maxFailures int
	window      time.Duration
}

func NewThrottle(rdb counterStore, maxFailures int, window time.Duration) *Throttle {
	return &Throttle{rdb: rdb, maxFailures: maxFailures, window: window}
}

// NewClient dials Redis and checks the connection with PING.
func NewClient(ctx context.Context, logger *zap.Logger, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected successfully", zap.String("addr", cfg.Addr))

	return rdb, nil
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (t *Throttle) Allowed(ctx context.Context, email string) (bool, error) {
	if t.maxFailures <= 0 {
		return true, nil
	}

	n, err := t.rdb.Get(ctx, key(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("read login failures: %w", err)
	}

	return n < t.maxFailures, nil
}

func (t *Throttle) RecordFailure(ctx context.Context, email string) error {
	k := key(email)

	n, err := t.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("count login failure: %w", err)
	}
	// the window starts at the first failure
	if n == 1 {
		if err = t.rdb.Expire(ctx, k, t.window).Err(); err != nil {
			return fmt.Errorf("set login failure window: %w", err)
		}
	}

	return nil
}

func (t *Throttle) Reset(ctx context.Context, email string) error {
	if err := t.rdb.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("reset login failures: %w", err)
	}
	return nil
}

// NopThrottle never blocks. It is used when Redis is not configured.
type NopThrottle struct{}

func (NopThrottle) Allowed(context.Context, string) (bool, error) { return true, nil }
func (NopThrottle) RecordFailure(context.Context, string) error   { return nil }
func (NopThrottle) Reset(context.Context, string) error           { return nil }
