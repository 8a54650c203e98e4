package main

import (
	"log"

	"github.com/anonto42/pulseblog/internal/cache"
	"github.com/anonto42/pulseblog/internal/render"
	"github.com/anonto42/pulseblog/internal/router"
	"github.com/anonto42/pulseblog/pkg/config"
	"github.com/anonto42/pulseblog/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db) // Ensure database connection is closed when main exits

	// Page cache: Redis when configured, in-process otherwise
	var pageCache cache.PageCache
	if cfg.RedisAddr != "" {
		client, err := config.InitRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer client.Close()
		pageCache = cache.NewRedisCache(client)
	} else {
		log.Println("REDIS_ADDR not set, using in-process page cache.")
		pageCache = cache.NewMemoryCache()
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Template renderer
	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, pageCache, cfg); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
