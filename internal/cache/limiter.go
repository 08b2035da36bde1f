package cache

import (
	"context"
	"fmt"
	"time"
)

const limiterKeyPrefix = "ratelimit:"

// Limiter 是固定視窗計數器：每個 key 在 window 內最多 limit 次
type Limiter struct {
	cache  Cache
	limit  int64
	window time.Duration
}

func NewLimiter(c Cache, limit int, window time.Duration) *Limiter {
	return &Limiter{cache: c, limit: int64(limit), window: window}
}

// Allow 回傳這次請求是否在額度內。
// 第一次計數時設定過期時間，視窗到期後計數歸零。
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := limiterKeyPrefix + key
	n, err := l.cache.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := l.cache.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return n <= l.limit, nil
}
