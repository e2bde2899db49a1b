package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/redis"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://localhost"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("last attempt returns its error without waiting", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0",
			RetryAttempts:  1,
			RetryInterval:  time.Hour,
			ConnectTimeout: 10 * time.Second,
		})
		require.ErrorIs(t, err, redis.ErrRedisNotReady)
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
		assert.NotEqual(t, redis.ErrRedisNotReady.Error(), err.Error(), "ping error is kept")
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
