package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// dashboardKey is the Redis key holding the serialized dashboard payload
const dashboardKey = "dashboard:payload"

// RedisDashboardCache is a best-effort read-through cache for the dashboard
// payload. Cache failures are logged and treated as misses; they never
// affect the dashboard response.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisDashboardCache creates a dashboard cache over the configured
// Redis instance
func NewRedisDashboardCache(cfg *config.RedisConfig, ttl time.Duration, log zerolog.Logger) *RedisDashboardCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisDashboardCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "dashboard_cache").Logger(),
	}
}

// Get returns the cached payload and whether it was present
func (c *RedisDashboardCache) Get(ctx context.Context) (*models.DashboardData, bool) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("Dashboard cache read failed")
		return nil, false
	}

	var data models.DashboardData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.log.Warn().Err(err).Msg("Dashboard cache payload corrupt")
		return nil, false
	}
	return &data, true
}

// Set stores the payload under the configured TTL
func (c *RedisDashboardCache) Set(ctx context.Context, data *models.DashboardData) {
	raw, err := json.Marshal(data)
	if err != nil {
		c.log.Warn().Err(err).Msg("Dashboard cache encode failed")
		return
	}

	if err := c.client.Set(ctx, dashboardKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Dashboard cache write failed")
	}
}

// Close releases the Redis connection
func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}
