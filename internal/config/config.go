package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost string
	AppPort string

	DirectoryURL     string
	DirectoryTimeout time.Duration

	RedisAddr     string
	RedisPassword string

	SessionTTL   time.Duration
	CookieSecure bool
}

func Load() Config {

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := Config{

		AppHost: getEnv("APP_HOST", "localhost"),
		AppPort: getEnv("APP_PORT", "3000"),

		DirectoryURL:     getEnv("DIRECTORY_URL", "http://localhost:5000"),
		DirectoryTimeout: getDuration("DIRECTORY_TIMEOUT", 5*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionTTL:   getDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
	}

	return cfg

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
