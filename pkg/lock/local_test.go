package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/lock"
)

func TestLocalSerialisesSameKey(t *testing.T) {
	l := lock.NewLocal()
	ctx := context.Background()

	var mu sync.Mutex
	inside, maxInside := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "cart:1")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
	assert.Equal(t, 0, l.Held())
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := lock.NewLocal()
	ctx := context.Background()

	r1, err := l.Acquire(ctx, "cart:1")
	require.NoError(t, err)
	defer r1()

	ctx2, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx2, "cart:2")
	require.NoError(t, err)
	r2()
}

func TestLocalAcquireHonoursContext(t *testing.T) {
	l := lock.NewLocal()

	release, err := l.Acquire(context.Background(), "user:a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "user:a")
	assert.ErrorIs(t, err, lock.ErrNotAcquired)

	release()
	release()
	assert.Equal(t, 0, l.Held())
}
