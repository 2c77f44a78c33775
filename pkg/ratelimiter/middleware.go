package ratelimiter

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ErrorHandlerFunc writes the response for a denied or failed check.
// err is ErrLimitExceeded when the key ran out of tokens.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a for storage efficiency.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}

		return combined
	}
}

// Prefixed scopes a key function so different routes keep separate buckets.
func Prefixed(prefix string, keyFunc KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		key := keyFunc(r)
		if key == "" {
			return ""
		}
		return prefix + ":" + key
	}
}

// MiddlewareConfig configures the rate limit middleware.
type MiddlewareConfig struct {
	Bucket       *Bucket
	KeyFunc      KeyFunc
	ErrorHandler ErrorHandlerFunc
}

// Middleware creates an HTTP middleware for rate limiting with plain-text error responses.
func Middleware(b *Bucket, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Bucket: b, KeyFunc: keyFunc})
}

// MiddlewareWithConfig creates an HTTP middleware for rate limiting.
// Requests with an empty key pass through unchecked.
func MiddlewareWithConfig(cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.Bucket == nil {
		panic("ratelimiter: middleware requires a bucket")
	}
	if cfg.KeyFunc == nil {
		panic("ratelimiter: middleware requires a key func")
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Bucket.Allow(r.Context(), key)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				retryAfter := int(math.Ceil(result.RetryAfter().Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, retryAfter)))
				cfg.ErrorHandler(w, r, ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if err == ErrLimitExceeded {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
