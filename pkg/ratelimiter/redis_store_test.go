package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	url := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STOREFRONT_TEST_REDIS_URL is not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	bucket, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, "storefront-test:"),
		ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	key := "login:" + uuid.NewString()
	t.Cleanup(func() { _ = bucket.Reset(context.Background(), key) })

	for _, want := range []int{1, 0, -1} {
		res, err := bucket.Allow(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}

	require.NoError(t, bucket.Reset(ctx, key))
	res, err := bucket.Allow(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
}
