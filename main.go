package main

import (
	"context"
	"log"

	"github.com/SANTHOSH-VJ/url-saas/internal/cache"
	"github.com/SANTHOSH-VJ/url-saas/internal/config"
	"github.com/SANTHOSH-VJ/url-saas/internal/controllers"
	"github.com/SANTHOSH-VJ/url-saas/internal/database"
	"github.com/SANTHOSH-VJ/url-saas/internal/repository"
	"github.com/SANTHOSH-VJ/url-saas/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Select the store once at startup: Postgres when reachable, the
	// in-memory store in development mode or when the database is down.
	// The choice never changes for the lifetime of the process.
	urlRepo := newRepository(cfg)

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		var err error
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize service and controllers
	urlService := service.NewURLService(urlRepo, cacheClient, service.Options{
		DedupeURLs: cfg.DedupeURLs,
	})
	shortenerController := controllers.NewShortenerController(urlService, cfg.BaseURL)
	qrcodeController := controllers.NewQRCodeController(cfg.BaseURL)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Redirect endpoint
	router.GET("/:shortCode", shortenerController.RedirectToURL)

	// API v1 routes group
	api := router.Group("/api/v1")
	{
		api.POST("/shorten", shortenerController.CreateShortURL)
		api.GET("/url/:shortCode", shortenerController.GetURLStats)
		api.GET("/qrcode/:shortCode", qrcodeController.GenerateQRCode)
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newRepository picks the store variant. Development mode skips the database
// entirely; otherwise a failed connection or migration falls back to the
// in-memory store rather than refusing to start.
func newRepository(cfg *config.Config) repository.URLRepository {
	if cfg.DevelopmentMode {
		log.Println("Running in DEVELOPMENT_MODE - using in-memory store")
		return repository.NewMemoryRepository()
	}

	db, err := database.NewConnection(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to database (%v). Falling back to in-memory store.", err)
		return repository.NewMemoryRepository()
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Connected to database")
	return repository.NewPostgresRepository(db)
}
