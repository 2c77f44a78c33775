package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Limit     int       // Maximum tokens (bucket capacity)
	Remaining int       // Tokens remaining; negative when the request was denied
	ResetAt   time.Time // Time when tokens will be refilled
}

// Allowed returns whether the request is allowed based on remaining tokens.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request.
// Returns 0 if the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	return r.retryAfter(time.Now())
}

func (r *Result) retryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Config defines the token bucket configuration.
type Config struct {
	Capacity       int           `env:"LOGIN_RATE_CAPACITY" envDefault:"10"`   // Maximum tokens the bucket can hold (burst limit)
	RefillRate     int           `env:"LOGIN_RATE_REFILL" envDefault:"1"`      // Number of tokens added per refill interval
	RefillInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"30s"` // How often tokens are added
}

// Validate checks that the configuration describes a usable bucket.
func (c Config) Validate() error {
	if c.Capacity <= 0 || c.RefillRate <= 0 || c.RefillInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ttl is how long an untouched bucket needs to refill completely.
func (c Config) ttl() time.Duration {
	intervals := c.Capacity/c.RefillRate + 1
	return time.Duration(intervals) * c.RefillInterval
}
