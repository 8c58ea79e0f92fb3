package middlewares

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/pkg"
	"github.com/safatanc/promotion-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	Allow(key string, limit Rate) (bool, RateLimitInfo)
	Reset(key string) error
}

// Rate defines the rate limit configuration
type Rate struct {
	Requests int
	Window   time.Duration
}

// RateLimitInfo contains information about the current rate limit status
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	limiter RateLimiter
}

func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// RedisRateLimiter implements RateLimiter with a sliding window kept in a
// Redis sorted set per key.
type RedisRateLimiter struct {
	redis     *redis.Client
	keyPrefix string
	logger    *logrus.Logger
}

func NewRedisRateLimiter(redis *redis.Client, config *infrastructures.AppConfig, logger *logrus.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		redis:     redis,
		keyPrefix: config.RATE_LIMIT_PREFIX,
		logger:    logger,
	}
}

// Allow implements RateLimiter.Allow using Redis sorted sets
func (l *RedisRateLimiter) Allow(key string, limit Rate) (bool, RateLimitInfo) {
	ctx := context.Background()
	now := time.Now()
	windowKey := l.windowKey(key)

	pipe := l.redis.Pipeline()

	// Remove old entries outside the window
	windowStart := now.Add(-limit.Window).UnixNano()
	pipe.ZRemRangeByScore(ctx, windowKey, "0", fmt.Sprintf("%d", windowStart))

	pipe.ZCard(ctx, windowKey)

	pipe.ZAdd(ctx, windowKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})

	pipe.Expire(ctx, windowKey, limit.Window)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		// Fail open: promotions stay reachable while Redis is down.
		l.logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
		return true, RateLimitInfo{
			Limit:     limit.Requests,
			Remaining: limit.Requests,
			Reset:     now.Add(limit.Window),
		}
	}

	// Count before this request was added
	count := cmds[1].(*redis.IntCmd).Val()

	remaining := limit.Requests - int(count) - 1
	allowed := remaining >= 0
	if remaining < 0 {
		remaining = 0
	}

	return allowed, RateLimitInfo{
		Limit:     limit.Requests,
		Remaining: remaining,
		Reset:     now.Add(limit.Window),
	}
}

// Reset implements RateLimiter.Reset
func (l *RedisRateLimiter) Reset(key string) error {
	return l.redis.Del(context.Background(), l.windowKey(key)).Err()
}

func (l *RedisRateLimiter) windowKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", l.keyPrefix, key)
}

// Common rate limits
var (
	PublicAPILimit = Rate{
		Requests: 120,
		Window:   time.Minute,
	}

	RedeemLimit = Rate{
		Requests: 30,
		Window:   time.Minute,
	}
)

// LimitByIP creates a middleware that rate limits by IP address
func (m *RateLimitMiddleware) LimitByIP(limit Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ip:%s", getIPAddress(c))
		return m.handleRateLimit(c, key, limit)
	}
}

// LimitRedeemByIP limits redeems per client and promotion, so hammering one
// promotion does not use up the budget for the others.
func (m *RateLimitMiddleware) LimitRedeemByIP(limit Rate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("redeem:%s:%s", getIPAddress(c), c.Params("id"))
		return m.handleRateLimit(c, key, limit)
	}
}

func (m *RateLimitMiddleware) handleRateLimit(c *fiber.Ctx, key string, limit Rate) error {
	allowed, info := m.limiter.Allow(key, limit)

	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

	if !allowed {
		return pkg.ErrorResponse(c, errors.NewTooManyRequestsError("Rate limit exceeded"))
	}

	return c.Next()
}

// getIPAddress gets the client IP address from request
func getIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xrip := c.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	return c.IP()
}
