package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/ordersvc/domain"
)

// RateLimiterImpl implements domain.RateLimiter as a Redis fixed-window
// counter. The first hit in a window creates the counter with the window as
// its TTL; the limit applies to hits within that window.
type RateLimiterImpl struct {
	client *redis.Client
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client) domain.RateLimiter {
	return &RateLimiterImpl{client: client}
}

// Allow implements domain.RateLimiter
func (l *RateLimiterImpl) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
