package utils

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type ScraperConfig struct {
	SourceURL      string
	UserAgent      string
	FetchTimeout   time.Duration
	RequestsPerSec float64
	MaxPerCategory int
	Cooldown       time.Duration
}

type ServerConfig struct {
	Addr string
	// RateLimitRPS is the per-client request rate; zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		// dev default (change for demo / production)
		JWTSecret:  envString("BOOKHUB_JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:  envString("BOOKHUB_JWT_ISSUER", "bookhub"),
		AccessTTL:  envDuration("BOOKHUB_ACCESS_TTL", 30*time.Minute),
		RefreshTTL: envDuration("BOOKHUB_REFRESH_TTL", 7*24*time.Hour),
	}
}

func LoadScraperConfig() ScraperConfig {
	return ScraperConfig{
		SourceURL:      envString("BOOKHUB_SOURCE_URL", "https://books.toscrape.com"),
		UserAgent:      envString("BOOKHUB_USER_AGENT", defaultUserAgent),
		FetchTimeout:   envDuration("BOOKHUB_FETCH_TIMEOUT", 10*time.Second),
		RequestsPerSec: envFloat("BOOKHUB_FETCH_RPS", 0),
		MaxPerCategory: envInt("BOOKHUB_MAX_BOOKS_PER_CATEGORY", 0),
		Cooldown:       envDuration("BOOKHUB_SCRAPE_COOLDOWN", time.Hour),
	}
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           envString("BOOKHUB_ADDR", ":8080"),
		RateLimitRPS:   envFloat("BOOKHUB_API_RPS", 0),
		RateLimitBurst: envInt("BOOKHUB_API_BURST", 20),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		slog.Warn("invalid number, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return f
}
