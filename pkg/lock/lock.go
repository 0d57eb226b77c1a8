// Package lock serialises work per key. Every read-modify-write of a user,
// cart or order document runs while holding that document's lock:
//
//	release, err := locker.Acquire(ctx, "cart:"+id)
//	if err != nil {
//	    return err
//	}
//	defer release()
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

// ErrNotAcquired is returned when ctx ends before the lock is free.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker hands out exclusive, per-key locks.
type Locker interface {
	// Acquire blocks until key is held or ctx is done. release must be
	// called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// New returns the locker selected by LOCK_DRIVER: "local" (default) or
// "redis" for several processes sharing one data directory or bucket. An
// unreachable Redis falls back to the local locker with a warning.
func New(ctx context.Context) (Locker, error) {
	switch driver := config.Get("LOCK_DRIVER", "local"); driver {
	case "local", "":
		return NewLocal(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("lock: redis unreachable, using local locks", "addr", config.RedisAddr(), "error", err)
			_ = client.Close()
			return NewLocal(), nil
		}
		return NewRedis(client, config.Duration("LOCK_TTL", defaultTTL)), nil
	default:
		return nil, fmt.Errorf("lock: unknown driver %q", driver)
	}
}
