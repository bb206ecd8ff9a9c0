package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("MATCHASOURCE_SERVER_PORT")
		os.Unsetenv("MATCHASOURCE_SERVER_ENVIRONMENT")
		os.Unsetenv("MATCHASOURCE_CATALOG_API_KEY")
		os.Unsetenv("MATCHASOURCE_CATALOG_BASE_URL")
		os.Unsetenv("MATCHASOURCE_CATALOG_TIMEOUT")
		os.Unsetenv("MATCHASOURCE_CACHE_TYPE")
		os.Unsetenv("MATCHASOURCE_CACHE_REDIS_URL")
		os.Unsetenv("MATCHASOURCE_CACHE_TTL")
		os.Unsetenv("MATCHASOURCE_RATELIMIT_PER_IP")
		os.Unsetenv("MATCHASOURCE_RATELIMIT_BURST")
		os.Unsetenv("MATCHASOURCE_SEARCH_DEFAULT_LIMIT")
		os.Unsetenv("MATCHASOURCE_SEARCH_MAX_LIMIT")
		os.Unsetenv("MATCHASOURCE_SCORING_REGION_MATCH")
		os.Unsetenv("MATCHASOURCE_LOGGING_LEVEL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "http://catalog.internal:8081" {
			t.Errorf("Catalog.BaseURL = %s, want http://catalog.internal:8081", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 30*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 5*time.Minute {
			t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 5 {
			t.Errorf("RateLimit.PerIP = %v, want 5", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 10 {
			t.Errorf("RateLimit.Burst = %d, want 10", cfg.RateLimit.Burst)
		}
		if cfg.Search.DefaultLimit != 20 {
			t.Errorf("Search.DefaultLimit = %d, want 20", cfg.Search.DefaultLimit)
		}
		if cfg.Search.MaxLimit != 100 {
			t.Errorf("Search.MaxLimit = %d, want 100", cfg.Search.MaxLimit)
		}
		if cfg.Search.Overfetch != 10 {
			t.Errorf("Search.Overfetch = %d, want 10", cfg.Search.Overfetch)
		}
		if cfg.Scoring.RegionMatch != 30 {
			t.Errorf("Scoring.RegionMatch = %v, want 30", cfg.Scoring.RegionMatch)
		}
		if cfg.Scoring.GradeMatch != 25 {
			t.Errorf("Scoring.GradeMatch = %v, want 25", cfg.Scoring.GradeMatch)
		}
		if cfg.Scoring.RecencyWindowDays != 30 {
			t.Errorf("Scoring.RecencyWindowDays = %d, want 30", cfg.Scoring.RecencyWindowDays)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATCHASOURCE_SERVER_PORT", "9090")
		os.Setenv("MATCHASOURCE_SERVER_ENVIRONMENT", "production")
		os.Setenv("MATCHASOURCE_CATALOG_API_KEY", "custom-api-key")
		os.Setenv("MATCHASOURCE_CATALOG_BASE_URL", "https://catalog.custom.example.com")
		os.Setenv("MATCHASOURCE_CATALOG_TIMEOUT", "10s")
		os.Setenv("MATCHASOURCE_CACHE_TYPE", "redis")
		os.Setenv("MATCHASOURCE_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("MATCHASOURCE_CACHE_TTL", "1m")
		os.Setenv("MATCHASOURCE_RATELIMIT_PER_IP", "20")
		os.Setenv("MATCHASOURCE_RATELIMIT_BURST", "40")
		os.Setenv("MATCHASOURCE_SCORING_REGION_MATCH", "50")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.APIKey != "custom-api-key" {
			t.Errorf("Catalog.APIKey = %s, want custom-api-key", cfg.Catalog.APIKey)
		}
		if cfg.Catalog.BaseURL != "https://catalog.custom.example.com" {
			t.Errorf("Catalog.BaseURL = %s, want custom base URL", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 10*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 10s", cfg.Catalog.Timeout)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 1*time.Minute {
			t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 20 {
			t.Errorf("RateLimit.PerIP = %v, want 20", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 40 {
			t.Errorf("RateLimit.Burst = %d, want 40", cfg.RateLimit.Burst)
		}
		if cfg.Scoring.RegionMatch != 50 {
			t.Errorf("Scoring.RegionMatch = %v, want 50", cfg.Scoring.RegionMatch)
		}
	})

	t.Run("empty base URL env var falls back to the default", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATCHASOURCE_CATALOG_BASE_URL", "")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil (default applies)", err)
		}
		if cfg.Catalog.BaseURL != "http://catalog.internal:8081" {
			t.Errorf("Catalog.BaseURL = %s, want default", cfg.Catalog.BaseURL)
		}
	})

	t.Run("fails with invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATCHASOURCE_CACHE_TYPE", "memcached")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want invalid cache type error")
		}
	})

	t.Run("fails when redis cache has no URL", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATCHASOURCE_CACHE_TYPE", "redis")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want missing redis URL error")
		}
	})

	t.Run("fails when default limit exceeds max limit", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATCHASOURCE_SEARCH_DEFAULT_LIMIT", "200")
		os.Setenv("MATCHASOURCE_SEARCH_MAX_LIMIT", "100")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want limit validation error")
		}
	})
}
