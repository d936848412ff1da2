package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	PostgresDSN   string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	FrontendOrigin string

	RateLimitMax     int
	AuthRateLimitMax int
	RateLimitWindow  time.Duration

	CliqAPIBase string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "focusflow"),
		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		AccessSecret:  getenv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getenv("JWT_REFRESH_SECRET", ""),
		AccessTTL:     getdur("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    getdur("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		FrontendOrigin: getenv("FRONTEND_ORIGIN", "http://localhost:5173"),

		RateLimitMax:     getint("RATE_LIMIT_MAX", 100),
		AuthRateLimitMax: getint("AUTH_RATE_LIMIT_MAX", 10),
		RateLimitWindow:  getdur("RATE_LIMIT_WINDOW", 15*time.Minute),

		CliqAPIBase: getenv("CLIQ_API_BASE", "https://cliq.zoho.com"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
