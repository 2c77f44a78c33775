package ratelimiter_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Now()}
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(0),
		ratelimiter.WithMemoryClock(clock.Now),
	)
	t.Cleanup(store.Close)

	b, err := ratelimiter.NewBucket(store, cfg)
	require.NoError(t, err)
	return b, clock
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	defer store.Close()

	tests := []struct {
		name    string
		store   ratelimiter.Store
		config  ratelimiter.Config
		wantErr bool
	}{
		{"valid", store, ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second}, false},
		{"nil store", nil, ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second}, true},
		{"zero capacity", store, ratelimiter.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}, true},
		{"zero refill rate", store, ratelimiter.Config{Capacity: 5, RefillRate: 0, RefillInterval: time.Second}, true},
		{"zero interval", store, ratelimiter.Config{Capacity: 5, RefillRate: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := ratelimiter.NewBucket(tt.store, tt.config)
			if tt.wantErr {
				assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.config, b.Config())
		})
	}
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("burst up to capacity then deny", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute})

		for i := range 3 {
			res, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, 2-i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
		assert.Positive(t, res.RetryAfter())
	})

	t.Run("denied requests do not drain the bucket", func(t *testing.T) {
		t.Parallel()
		b, clock := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})

		for range 2 {
			_, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
		}
		for range 5 {
			res, err := b.Allow(ctx, "ip")
			require.NoError(t, err)
			assert.False(t, res.Allowed())
		}

		clock.Advance(time.Minute)
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("refill never exceeds capacity", func(t *testing.T) {
		t.Parallel()
		b, clock := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 2, RefillInterval: time.Second})

		_, err := b.AllowN(ctx, "ip", 3)
		require.NoError(t, err)

		clock.Advance(time.Hour)
		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		res, err := b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed())

		res, err = b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed())

		res, err = b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	})

	t.Run("reset refills the bucket", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})

		_, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		require.NoError(t, b.Reset(ctx, "ip"))

		res, err := b.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})
}

func TestBucket_AllowN_InvalidCount(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})

	for _, n := range []int{0, -1, 4} {
		_, err := b.AllowN(context.Background(), "ip", n)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	}
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func (failingStore) Reset(context.Context, string) error {
	return errors.New("connection refused")
}

func TestBucket_StoreFailure(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "ip")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	assert.ErrorIs(t, b.Reset(context.Background(), "ip"), ratelimiter.ErrStoreUnavailable)
}

func TestMemoryStore_RemoveStale(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(0),
		ratelimiter.WithStaleAfter(time.Minute),
		ratelimiter.WithMemoryClock(clock.Now),
	)
	defer store.Close()

	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	_, _, err := store.ConsumeTokens(context.Background(), "old", 1, cfg)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, _, err = store.ConsumeTokens(context.Background(), "fresh", 1, cfg)
	require.NoError(t, err)

	store.RemoveStale()
	assert.Equal(t, 1, store.Len())

	store.Close()
	store.Close()
}
