package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/rs/zerolog"
)

func setupCache(t *testing.T, ttl time.Duration) (*RedisDashboardCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := NewRedisDashboardCache(&config.RedisConfig{Addr: mr.Addr()}, ttl, zerolog.Nop())
	t.Cleanup(func() { cache.Close() })

	return cache, mr
}

func TestDashboardCache_MissThenHit(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("Expected a cache miss on empty cache")
	}

	data := &models.DashboardData{
		Totals: models.TotalStats{Views: 100, Likes: 10, Comments: 5, Subscribers: 3},
		TopArticles: []models.TopContent{
			{Slug: "go/concurrency", Title: "Concurrency Patterns", Views: 100, Likes: 10},
		},
	}
	cache.Set(ctx, data)

	cached, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("Expected a cache hit after Set")
	}
	if cached.Totals.Views != 100 {
		t.Errorf("Expected 100 views, got %d", cached.Totals.Views)
	}
	if len(cached.TopArticles) != 1 || cached.TopArticles[0].Title != "Concurrency Patterns" {
		t.Errorf("Top articles not preserved: %+v", cached.TopArticles)
	}
}

func TestDashboardCache_Expiry(t *testing.T) {
	cache, mr := setupCache(t, time.Second)
	ctx := context.Background()

	cache.Set(ctx, &models.DashboardData{Totals: models.TotalStats{Views: 1}})

	mr.FastForward(2 * time.Second)

	if _, ok := cache.Get(ctx); ok {
		t.Error("Expected a cache miss after TTL expiry")
	}
}

func TestDashboardCache_CorruptPayload(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)

	mr.Set(dashboardKey, "{not json")

	if _, ok := cache.Get(context.Background()); ok {
		t.Error("Expected a corrupt payload to read as a miss")
	}
}

func TestDashboardCache_UnreachableServer(t *testing.T) {
	cache, mr := setupCache(t, time.Minute)
	ctx := context.Background()

	mr.Close()

	// Both operations degrade silently when Redis is down
	cache.Set(ctx, &models.DashboardData{})
	if _, ok := cache.Get(ctx); ok {
		t.Error("Expected a miss when Redis is unreachable")
	}
}
