package di

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-portal-client/cache"
)

// Config carries everything the container needs to assemble the client.
type Config struct {
	// APIBaseURL is the portal backend root, e.g. "https://api.example.com".
	APIBaseURL string

	// APIToken is an optional static bearer token. When a session is
	// active its token takes precedence.
	APIToken string

	// RequestTimeout bounds each HTTP request. Zero means no deadline.
	RequestTimeout time.Duration

	// Cache configures the value store retention policy.
	Cache cache.Config
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one exists. Missing variables fall back to defaults.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL: envOr("PORTAL_API_URL", "http://localhost:8080"),
		APIToken:   os.Getenv("PORTAL_API_TOKEN"),
		Cache:      cache.DefaultConfig(),
	}

	if v := os.Getenv("PORTAL_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("PORTAL_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("PORTAL_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Capacity = n
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
