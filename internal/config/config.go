package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	BaseURL         string // Base URL used when building short links
	RedisURL        string // Optional; empty disables the cache
	Port            string
	DevelopmentMode bool // Forces the in-memory store, no database required
	DedupeURLs      bool // Reuse an existing code when the same URL is shortened again
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	port := getEnv("PORT", "8080")
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		BaseURL:         getEnv("BASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		Port:            port,
		DevelopmentMode: getEnvBool("DEVELOPMENT_MODE", false),
		DedupeURLs:      getEnvBool("DEDUPE_URLS", false),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + port
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch getEnv(key, "") {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
