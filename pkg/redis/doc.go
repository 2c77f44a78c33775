// Package redis connects to Redis with retries and exposes a health probe.
//
// The API uses it as the shared backend for the login rate limiter when
// REDIS_ENABLED is set:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := ratelimiter.NewRedisStore(client)
package redis
