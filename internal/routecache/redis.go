package routecache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Config holds Redis configuration
type Config struct {
	Host       string
	Port       int
	Password   string
	DB         int
	TLSEnabled bool
	TTL        time.Duration
}

// LoadConfigFromEnv loads Redis configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, _ := time.ParseDuration(getEnv("CACHE_TTL", "10m"))

	return &Config{
		Host:       getEnv("REDIS_HOST", "localhost"),
		Port:       port,
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         db,
		TLSEnabled: getEnv("REDIS_TLS_ENABLED", "false") == "true",
		TTL:        ttl,
	}
}

// NewClient connects a Redis client and verifies the connection
func NewClient(config *Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}

	// Required for managed Redis (e.g. Upstash)
	if config.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisCache shares memoized estimates across service instances. Failed
// round-trips degrade to cache misses; an unreachable Redis never fails an
// optimization request.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client with the given entry TTL
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get retrieves a cached estimate
func (c *RedisCache) Get(ctx context.Context, key string) (models.RouteEstimate, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return models.RouteEstimate{}, false
	}
	if err != nil {
		log.Printf("estimate cache read failed: %v", err)
		return models.RouteEstimate{}, false
	}

	var est models.RouteEstimate
	if err := json.Unmarshal(data, &est); err != nil {
		log.Printf("failed to unmarshal cached estimate: %v", err)
		return models.RouteEstimate{}, false
	}

	return est, true
}

// Set caches an estimate with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, est models.RouteEstimate) {
	data, err := json.Marshal(est)
	if err != nil {
		log.Printf("failed to marshal estimate: %v", err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("estimate cache write failed: %v", err)
	}
}

// HealthCheck pings the Redis connection
func HealthCheck(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis ping failed: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
