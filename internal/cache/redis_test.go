package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	orig := redisNewClient
	t.Cleanup(func() { redisNewClient = orig })

	t.Run("success", func(t *testing.T) {
		var opts *redis.Options
		stub := &FakeCache{}
		redisNewClient = func(o *redis.Options) Cache {
			opts = o
			return stub
		}

		c, err := NewRedisClient(context.Background(), "127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Equal(t, stub, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
	})

	t.Run("ping fail", func(t *testing.T) {
		closed := false
		redisNewClient = func(o *redis.Options) Cache {
			return &FakeCache{
				PingFn: func(context.Context) *redis.StatusCmd {
					return redis.NewStatusResult("", errors.New("fail"))
				},
				CloseFn: func() error { closed = true; return nil },
			}
		}

		c, err := NewRedisClient(context.Background(), "addr", "", 0)
		require.EqualError(t, err, "redis ping addr: fail")
		require.Nil(t, c)
		require.True(t, closed)
	})
}
