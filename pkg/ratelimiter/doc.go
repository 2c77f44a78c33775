// Package ratelimiter provides token bucket rate limiting with memory and
// Redis storage and HTTP middleware.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. A request that finds too few tokens is denied and takes
// nothing, so hammering a limited key does not push its recovery further out.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 30 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, "login:203.0.113.7")
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		// retry after result.RetryAfter()
//	}
//
// NewRedisStore keeps buckets in Redis behind a Lua script so every API
// instance shares the same limits.
//
// # HTTP Middleware
//
// MiddlewareWithConfig sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every checked response. Denied requests also get
// Retry-After and are handed to the ErrorHandler with ErrLimitExceeded.
//
//	r.With(ratelimiter.MiddlewareWithConfig(ratelimiter.MiddlewareConfig{
//		Bucket:       limiter,
//		KeyFunc:      ratelimiter.Prefixed("login", clientip.GetIP),
//		ErrorHandler: onLimit,
//	})).Post("/auth/login", login)
package ratelimiter
