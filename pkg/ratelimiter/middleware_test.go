package ratelimiter_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/pkg/ratelimiter"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	handler := ratelimiter.Middleware(b, func(r *http.Request) string { return r.RemoteAddr })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := range 2 {
		rec := do("10.0.0.1:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	}

	rec := do("10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retry, 1)

	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000").Code)
}

func TestMiddlewareWithConfig_ErrorHandler(t *testing.T) {
	t.Parallel()

	var got []error
	cfg := ratelimiter.MiddlewareConfig{
		KeyFunc: func(r *http.Request) string { return r.Header.Get("X-Key") },
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			got = append(got, err)
			w.WriteHeader(http.StatusTeapot)
		},
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("limit exceeded", func(t *testing.T) {
		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		c := cfg
		c.Bucket = b
		h := ratelimiter.MiddlewareWithConfig(c)(next)

		for _, want := range []int{http.StatusOK, http.StatusTeapot} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Key", "k")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, want, rec.Code)
		}
		require.Len(t, got, 1)
		assert.ErrorIs(t, got[0], ratelimiter.ErrLimitExceeded)
	})

	t.Run("empty key skips the check", func(t *testing.T) {
		b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		c := cfg
		c.Bucket = b
		h := ratelimiter.MiddlewareWithConfig(c)(next)

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("store failure", func(t *testing.T) {
		got = nil
		b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
		require.NoError(t, err)
		c := cfg
		c.Bucket = b
		h := ratelimiter.MiddlewareWithConfig(c)(next)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Key", "k")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Len(t, got, 1)
		assert.True(t, errors.Is(got[0], ratelimiter.ErrStoreUnavailable))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-A", "a")

	fromHeader := func(name string) ratelimiter.KeyFunc {
		return func(r *http.Request) string { return r.Header.Get(name) }
	}

	assert.Equal(t, "a", ratelimiter.Composite(fromHeader("X-A"), fromHeader("X-B"))(req))
	assert.Equal(t, "", ratelimiter.Composite(fromHeader("X-B"))(req))

	req.Header.Set("X-B", "b")
	assert.Equal(t, "a:b", ratelimiter.Composite(fromHeader("X-A"), fromHeader("X-B"))(req))

	req.Header.Set("X-Long", strings.Repeat("x", 100))
	assert.LessOrEqual(t, len(ratelimiter.Composite(fromHeader("X-Long"))(req)), 64)

	assert.Equal(t, "login:a", ratelimiter.Prefixed("login", fromHeader("X-A"))(req))
	assert.Equal(t, "", ratelimiter.Prefixed("login", fromHeader("X-C"))(req))
}
