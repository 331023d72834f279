package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Site identity, injected into handlers rather than read from a
	// package-level constant
	Site SiteConfig

	// Analytics dashboard configuration
	Analytics AnalyticsConfig

	// Optional Redis cache configuration
	Redis RedisConfig

	// Background cleanup configuration
	Cleanup CleanupConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// SiteConfig holds the site identity used by public endpoints
type SiteConfig struct {
	Name        string
	Author      string
	Description string
	BaseURL     string
	SocialLinks []string
}

// AnalyticsConfig holds dashboard aggregation settings
type AnalyticsConfig struct {
	TopN          int
	ActivityLimit int
	CacheTTL      time.Duration
}

// RedisConfig holds the optional dashboard cache settings. The cache is
// disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CleanupConfig holds the unconfirmed-subscriber pruning settings
type CleanupConfig struct {
	Schedule      string
	SubscriberTTL time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "blog_platform"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Site: SiteConfig{
			Name:        getEnv("SITE_NAME", "My Site"),
			Author:      getEnv("SITE_AUTHOR", ""),
			Description: getEnv("SITE_DESCRIPTION", ""),
			BaseURL:     getEnv("SITE_BASE_URL", "http://localhost:8080"),
			SocialLinks: getSliceEnv("SITE_SOCIAL_LINKS"),
		},
		Analytics: AnalyticsConfig{
			TopN:          getIntEnv("ANALYTICS_TOP_N", 10),
			ActivityLimit: getIntEnv("ANALYTICS_ACTIVITY_LIMIT", 20),
			CacheTTL:      getDurationEnv("ANALYTICS_CACHE_TTL", 60*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Cleanup: CleanupConfig{
			Schedule:      getEnv("CLEANUP_SCHEDULE", "@hourly"),
			SubscriberTTL: getDurationEnv("CLEANUP_SUBSCRIBER_TTL", 72*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Analytics.TopN <= 0 {
		return fmt.Errorf("ANALYTICS_TOP_N must be positive")
	}
	if c.Analytics.ActivityLimit <= 0 {
		return fmt.Errorf("ANALYTICS_ACTIVITY_LIMIT must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Enabled reports whether the Redis cache is configured
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
