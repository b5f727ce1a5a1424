package middleware

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig controls the per-client request budget
type RateLimitConfig struct {
	PerSecond int
	PerDay    int
}

// LoadRateLimitConfigFromEnv loads rate limit configuration from environment variables
func LoadRateLimitConfigFromEnv() *RateLimitConfig {
	perSecond, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_SECOND", "10"))
	perDay, _ := strconv.Atoi(getEnv("RATE_LIMIT_PER_DAY", "10000"))

	return &RateLimitConfig{
		PerSecond: perSecond,
		PerDay:    perDay,
	}
}

// RateLimitMiddleware limits requests per client IP using Redis counters.
// Route providers meter their own quotas per key, so this guards the upstream
// budget as much as this service. Redis failures let requests through.
func RateLimitMiddleware(rdb *redis.Client, cfg *RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		ctx := context.Background()
		now := time.Now()

		if cfg.PerSecond > 0 {
			key := fmt.Sprintf("rl:ip:%s:second:%d", ip, now.Unix())
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("rate limit check failed for %s: %v", ip, err)
				return c.Next()
			}
			rdb.Expire(ctx, key, 2*time.Second)

			if count > int64(cfg.PerSecond) {
				c.Set("X-RateLimit-Limit-Second", strconv.Itoa(cfg.PerSecond))
				c.Set("X-RateLimit-Remaining-Second", "0")
				c.Set("Retry-After", "1")

				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":       "rate_limit_exceeded",
					"message":     "Too many requests per second",
					"limit_type":  "per_second",
					"limit":       cfg.PerSecond,
					"retry_after": 1,
				})
			}
		}

		if cfg.PerDay > 0 {
			key := fmt.Sprintf("rl:ip:%s:day:%s", ip, now.Format("2006-01-02"))
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("rate limit check failed for %s: %v", ip, err)
				return c.Next()
			}
			// 25 hours to handle timezone differences
			rdb.Expire(ctx, key, 25*time.Hour)

			if count > int64(cfg.PerDay) {
				tomorrow := now.AddDate(0, 0, 1)
				midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
				retryAfter := int64(midnight.Sub(now).Seconds())

				c.Set("X-RateLimit-Limit-Day", strconv.Itoa(cfg.PerDay))
				c.Set("X-RateLimit-Remaining-Day", "0")
				c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))

				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":       "daily_quota_exceeded",
					"message":     "Daily quota exceeded",
					"limit_type":  "per_day",
					"limit":       cfg.PerDay,
					"used":        count,
					"retry_after": retryAfter,
					"reset_at":    midnight.Format(time.RFC3339),
				})
			}

			c.Set("X-RateLimit-Remaining-Day", strconv.FormatInt(int64(cfg.PerDay)-count, 10))
		}

		return c.Next()
	}
}

// getEnv retrieves an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
