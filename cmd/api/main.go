package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/aicc6/weather-flick-back-sub000/internal/api"
	"github.com/aicc6/weather-flick-back-sub000/internal/db"
	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/middleware"
	"github.com/aicc6/weather-flick-back-sub000/internal/optimizer"
	"github.com/aicc6/weather-flick-back-sub000/internal/places"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
	"github.com/aicc6/weather-flick-back-sub000/internal/routecache"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("Starting route optimization API server...")

	// Redis is optional: without it the estimate cache is in process and
	// rate limiting is off.
	var rdb *redis.Client
	cacheConfig := routecache.LoadConfigFromEnv()
	var estimateCache routecache.EstimateCache
	if client, err := routecache.NewClient(cacheConfig); err != nil {
		log.Printf("Redis unavailable, falling back to in-memory cache: %v", err)
		estimateCache = routecache.NewMemoryCache(0, cacheConfig.TTL)
	} else {
		rdb = client
		estimateCache = routecache.NewRedisCache(rdb, cacheConfig.TTL)
		log.Println("✓ Redis connection established")
	}

	// The place catalog is optional: without a database, callers must
	// inline place data in every request.
	var catalog *places.Repository
	if os.Getenv("DB_HOST") != "" {
		pool, err := db.GetDB()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		catalog = places.NewRepository(pool)
		log.Println("✓ Database connection established")
	} else {
		log.Println("DB_HOST not set, place catalog disabled")
	}

	estimator := geo.NewEstimator()
	client := provider.NewRouteClient(provider.LoadClientConfigFromEnv(), estimator, estimateCache)
	planner := optimizer.NewPlanner(client)
	handler := api.NewHandler(planner, catalog, rdb)

	app := fiber.New(fiber.Config{
		AppName:      "Route Optimization API",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	if rdb != nil {
		app.Use(middleware.RateLimitMiddleware(rdb, middleware.LoadRateLimitConfigFromEnv()))
	}

	handler.RegisterRoutes(app)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"error": "endpoint not found",
		})
	})

	port := getEnv("API_PORT", "8080")
	addr := fmt.Sprintf(":%s", port)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Server listening on http://localhost%s", addr)
	log.Printf("📍 Optimize: POST http://localhost%s/v1/routes/optimize", addr)
	log.Printf("❤️  Health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// customErrorHandler handles errors returned from handlers
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
