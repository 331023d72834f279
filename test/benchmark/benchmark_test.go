package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/service"
	"github.com/rs/zerolog"
)

func seededRepos(articles, pages, comments int) *repository.Repositories {
	contentRepo := mocks.NewMockContentRepository()
	articleStats := mocks.NewMockStatsRepository()
	pageStats := mocks.NewMockStatsRepository()
	commentRepo := mocks.NewMockCommentRepository()
	subscriberRepo := mocks.NewMockSubscriberRepository()

	now := time.Now()
	for i := 0; i < articles; i++ {
		slug := fmt.Sprintf("go/article-%04d", i)
		viewed := now.Add(-time.Duration(i) * time.Minute)
		articleStats.Stats[slug] = &models.Stat{
			Slug:         slug,
			Views:        int64(i * 7),
			Likes:        int64(i),
			LastViewedAt: &viewed,
		}
		contentRepo.Items[fmt.Sprintf("a%d", i)] = &models.Content{
			ID:        fmt.Sprintf("a%d", i),
			Type:      models.ContentTypeArticle,
			TopicSlug: "go",
			Slug:      fmt.Sprintf("article-%04d", i),
			Title:     fmt.Sprintf("Article %d", i),
			Published: true,
			CreatedAt: now,
		}
	}
	for i := 0; i < pages; i++ {
		slug := fmt.Sprintf("page-%04d", i)
		pageStats.Stats[slug] = &models.Stat{Slug: slug, Views: int64(i * 3)}
	}
	for i := 0; i < comments; i++ {
		id := fmt.Sprintf("c%d", i)
		commentRepo.Comments[id] = &models.Comment{
			ID:          id,
			ArticleSlug: fmt.Sprintf("go/article-%04d", i%articles),
			AuthorName:  "reader",
			Body:        "comment",
			Approved:    i%2 == 0,
			CreatedAt:   now.Add(-time.Duration(i) * time.Second),
		}
	}

	return &repository.Repositories{
		Content:      contentRepo,
		ArticleStats: articleStats,
		PageStats:    pageStats,
		Comment:      commentRepo,
		Subscriber:   subscriberRepo,
	}
}

// BenchmarkGetDashboardData measures the full six-way fan-out over a
// store holding 1000 articles worth of stats.
func BenchmarkGetDashboardData(b *testing.B) {
	repos := seededRepos(1000, 50, 500)
	cfg := &config.Config{
		Analytics: config.AnalyticsConfig{TopN: 10, ActivityLimit: 20},
	}
	services := service.NewServices(repos, cfg, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		data := services.Analytics.GetDashboardData(context.Background())
		if data == nil {
			b.Fatal("dashboard payload missing")
		}
	}
}

// BenchmarkSubscriberExport measures NDJSON streaming over 1000 subscribers
func BenchmarkSubscriberExport(b *testing.B) {
	subscriberRepo := mocks.NewMockSubscriberRepository()
	now := time.Now()
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("s%d", i)
		subscriberRepo.Subscribers[id] = &models.Subscriber{
			ID:        id,
			Email:     fmt.Sprintf("reader%04d@example.com", i),
			Confirmed: i%3 != 0,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		count := 0
		subscriberRepo.StreamAll(context.Background(), func(s *models.Subscriber) error {
			count++
			return nil
		})
		if count != 1000 {
			b.Fatalf("streamed %d subscribers", count)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}
