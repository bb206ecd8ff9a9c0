package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
	Scoring   ScoringConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog service configuration
type CatalogConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // sustained requests per second per client IP
	Burst int     `mapstructure:"burst"`
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
	Overfetch    int `mapstructure:"overfetch"`
}

// ScoringConfig holds the relevance rule weights
type ScoringConfig struct {
	RegionMatch        float64 `mapstructure:"region_match"`
	GradeMatch         float64 `mapstructure:"grade_match"`
	CertificationMatch float64 `mapstructure:"certification_match"`
	MOQFit             float64 `mapstructure:"moq_fit"`
	LeadTimeFit        float64 `mapstructure:"lead_time_fit"`
	PriceFit           float64 `mapstructure:"price_fit"`
	KeywordMatch       float64 `mapstructure:"keyword_match"`
	VerifiedSeller     float64 `mapstructure:"verified_seller"`
	Recency            float64 `mapstructure:"recency"`
	RecencyWindowDays  int     `mapstructure:"recency_window_days"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/matchasource/")

	// Environment variable settings
	v.SetEnvPrefix("MATCHASOURCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "http://catalog.internal:8081")
	v.SetDefault("catalog.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 5)
	v.SetDefault("ratelimit.burst", 10)

	// Search defaults
	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.overfetch", 10)

	// Scoring defaults
	v.SetDefault("scoring.region_match", 30.0)
	v.SetDefault("scoring.grade_match", 25.0)
	v.SetDefault("scoring.certification_match", 15.0)
	v.SetDefault("scoring.moq_fit", 10.0)
	v.SetDefault("scoring.lead_time_fit", 10.0)
	v.SetDefault("scoring.price_fit", 10.0)
	v.SetDefault("scoring.keyword_match", 5.0)
	v.SetDefault("scoring.verified_seller", 8.0)
	v.SetDefault("scoring.recency", 5.0)
	v.SetDefault("scoring.recency_window_days", 30)

	// Logging defaults
	v.SetDefault("logging.level", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set MATCHASOURCE_CATALOG_BASE_URL)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Search.MaxLimit > 0 && config.Search.DefaultLimit > config.Search.MaxLimit {
		return fmt.Errorf("search default limit (%d) exceeds max limit (%d)", config.Search.DefaultLimit, config.Search.MaxLimit)
	}

	return nil
}
