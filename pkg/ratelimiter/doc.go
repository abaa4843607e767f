// Package ratelimiter throttles repeated requests with a token bucket.
//
// The storefront uses it to slow down password guessing on session creation:
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, "storefront:"), cfg)
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.KeyByIP("login:"))).Post("/sessions", ...)
//
// A bucket starts full with Capacity tokens and regains RefillRate tokens per
// RefillInterval. Denied requests still take a token, so a client that keeps
// hammering stays locked out until it backs off.
//
// MemoryStore serves a single instance; RedisStore runs the same arithmetic
// in a Lua script so every instance shares one bucket per key.
package ratelimiter
