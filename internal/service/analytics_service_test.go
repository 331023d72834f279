package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/mocks"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/service"
	"github.com/rs/zerolog"
)

type analyticsFixture struct {
	analytics service.AnalyticsService
	content   *mocks.MockContentRepository
	articles  *mocks.MockStatsRepository
	pages     *mocks.MockStatsRepository
	comments  *mocks.MockCommentRepository
	subs      *mocks.MockSubscriberRepository
}

func setupAnalytics(t *testing.T) *analyticsFixture {
	t.Helper()

	f := &analyticsFixture{
		content:  mocks.NewMockContentRepository(),
		articles: mocks.NewMockStatsRepository(),
		pages:    mocks.NewMockStatsRepository(),
		comments: mocks.NewMockCommentRepository(),
		subs:     mocks.NewMockSubscriberRepository(),
	}

	repos := &repository.Repositories{
		Content:      f.content,
		ArticleStats: f.articles,
		PageStats:    f.pages,
		Comment:      f.comments,
		Subscriber:   f.subs,
	}

	cfg := &config.Config{
		Analytics: config.AnalyticsConfig{TopN: 10, ActivityLimit: 20},
	}

	f.analytics = service.NewServices(repos, cfg, zerolog.Nop()).Analytics
	return f
}

func (f *analyticsFixture) addStat(repo *mocks.MockStatsRepository, slug string, views, likes int64, lastViewed *time.Time) {
	repo.Stats[slug] = &models.Stat{Slug: slug, Views: views, Likes: likes, LastViewedAt: lastViewed}
}

func (f *analyticsFixture) addArticle(topicSlug, slug, title string, published bool) {
	id := topicSlug + "-" + slug
	f.content.Items[id] = &models.Content{
		ID:        id,
		Type:      models.ContentTypeArticle,
		Slug:      slug,
		TopicSlug: topicSlug,
		Title:     title,
		Published: published,
		CreatedAt: time.Now(),
	}
}

func TestGetDashboardData_Totals(t *testing.T) {
	f := setupAnalytics(t)

	f.addStat(f.articles, "go/concurrency", 100, 10, nil)
	f.addStat(f.articles, "go/generics", 50, 5, nil)
	f.addStat(f.pages, "about", 30, 2, nil)

	f.comments.Comments["c1"] = &models.Comment{ID: "c1", Approved: true, CreatedAt: time.Now()}
	f.comments.Comments["c2"] = &models.Comment{ID: "c2", Approved: false, CreatedAt: time.Now()}
	f.subs.Subscribers["s1"] = &models.Subscriber{ID: "s1", Email: "a@test.com", Confirmed: true}
	f.subs.Subscribers["s2"] = &models.Subscriber{ID: "s2", Email: "b@test.com", Confirmed: false}

	data := f.analytics.GetDashboardData(context.Background())

	if data.Totals.Views != 180 {
		t.Errorf("Expected 180 total views, got %d", data.Totals.Views)
	}
	if data.Totals.Likes != 17 {
		t.Errorf("Expected 17 total likes, got %d", data.Totals.Likes)
	}
	if data.Totals.Comments != 1 {
		t.Errorf("Expected 1 approved comment, got %d", data.Totals.Comments)
	}
	if data.Totals.Subscribers != 1 {
		t.Errorf("Expected 1 confirmed subscriber, got %d", data.Totals.Subscribers)
	}
}

func TestGetDashboardData_LikeRateScenario(t *testing.T) {
	f := setupAnalytics(t)

	// One article stat, no page stats: views=100, likes=10 -> likeRate 10.0
	f.addStat(f.articles, "a/x", 100, 10, nil)

	data := f.analytics.GetDashboardData(context.Background())

	if data.Totals.Views != 100 {
		t.Errorf("Expected 100 total views, got %d", data.Totals.Views)
	}
	if data.Totals.Likes != 10 {
		t.Errorf("Expected 10 total likes, got %d", data.Totals.Likes)
	}
	if data.Engagement.LikeRate != 10.0 {
		t.Errorf("Expected like rate 10.0, got %f", data.Engagement.LikeRate)
	}
}

func TestGetDashboardData_ZeroDivisionGuards(t *testing.T) {
	f := setupAnalytics(t)

	// No stats, no articles, nothing to divide by
	data := f.analytics.GetDashboardData(context.Background())

	if data.Engagement.AvgViewsPerArticle != 0 {
		t.Errorf("Expected avg views 0, got %f", data.Engagement.AvgViewsPerArticle)
	}
	if data.Engagement.AvgLikesPerArticle != 0 {
		t.Errorf("Expected avg likes 0, got %f", data.Engagement.AvgLikesPerArticle)
	}
	if data.Engagement.LikeRate != 0 {
		t.Errorf("Expected like rate 0, got %f", data.Engagement.LikeRate)
	}
}

func TestGetDashboardData_EngagementAverages(t *testing.T) {
	f := setupAnalytics(t)

	f.addArticle("go", "concurrency", "Concurrency Patterns", true)
	f.addArticle("go", "generics", "Generics in Practice", true)
	f.addStat(f.articles, "go/concurrency", 100, 20, nil)
	f.addStat(f.pages, "about", 50, 10, nil)
	f.comments.Comments["p1"] = &models.Comment{ID: "p1", Approved: false, CreatedAt: time.Now()}

	data := f.analytics.GetDashboardData(context.Background())

	if data.Engagement.AvgViewsPerArticle != 75.0 {
		t.Errorf("Expected avg views 75.0, got %f", data.Engagement.AvgViewsPerArticle)
	}
	if data.Engagement.AvgLikesPerArticle != 15.0 {
		t.Errorf("Expected avg likes 15.0, got %f", data.Engagement.AvgLikesPerArticle)
	}
	if data.Engagement.LikeRate != 20.0 {
		t.Errorf("Expected like rate 20.0, got %f", data.Engagement.LikeRate)
	}
	if data.Engagement.PendingComments != 1 {
		t.Errorf("Expected 1 pending comment, got %d", data.Engagement.PendingComments)
	}
}

func TestGetDashboardData_TopArticles(t *testing.T) {
	f := setupAnalytics(t)

	f.addArticle("go", "concurrency", "Concurrency Patterns", true)
	f.addStat(f.articles, "go/concurrency", 300, 30, nil)
	f.addStat(f.articles, "go/generics", 200, 20, nil) // no content record
	f.addStat(f.articles, "go/errors", 100, 10, nil)   // no content record

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.TopArticles) != 3 {
		t.Fatalf("Expected 3 top articles, got %d", len(data.TopArticles))
	}

	// Sorted strictly descending by views
	for i := 1; i < len(data.TopArticles); i++ {
		if data.TopArticles[i].Views > data.TopArticles[i-1].Views {
			t.Errorf("Top articles not sorted by views: %+v", data.TopArticles)
		}
	}

	if data.TopArticles[0].Title != "Concurrency Patterns" {
		t.Errorf("Expected resolved title, got %q", data.TopArticles[0].Title)
	}
	// Unmatched slugs fall back to the raw slug unchanged
	if data.TopArticles[1].Title != "go/generics" {
		t.Errorf("Expected raw slug fallback, got %q", data.TopArticles[1].Title)
	}
}

func TestGetDashboardData_TopQueryFailureIsIsolated(t *testing.T) {
	f := setupAnalytics(t)

	f.addStat(f.articles, "go/concurrency", 100, 10, nil)
	f.subs.Subscribers["s1"] = &models.Subscriber{ID: "s1", Email: "a@test.com", Confirmed: true}
	f.articles.TopError = errors.New("connection reset")

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.TopArticles) != 0 {
		t.Errorf("Expected empty top articles on query failure, got %d", len(data.TopArticles))
	}
	// Other sections keep their own sources
	if data.Totals.Views != 100 {
		t.Errorf("Expected totals unaffected, got %d views", data.Totals.Views)
	}
	if data.Totals.Subscribers != 1 {
		t.Errorf("Expected subscriber count unaffected, got %d", data.Totals.Subscribers)
	}
}

func TestGetDashboardData_TotalsFailureIsIsolated(t *testing.T) {
	f := setupAnalytics(t)

	f.addStat(f.articles, "go/concurrency", 100, 10, nil)
	f.comments.CountError = errors.New("collection unreachable")

	data := f.analytics.GetDashboardData(context.Background())

	if data.Totals != (models.TotalStats{}) {
		t.Errorf("Expected zeroed totals on failure, got %+v", data.Totals)
	}
	if len(data.TopArticles) != 1 {
		t.Errorf("Expected top articles unaffected, got %d", len(data.TopArticles))
	}
}

func TestGetDashboardData_RecentActivityOrdering(t *testing.T) {
	f := setupAnalytics(t)

	t1 := time.Now().Add(-10 * time.Minute)
	t2 := time.Now().Add(-2 * time.Minute)

	f.addStat(f.articles, "go/concurrency", 5, 0, &t1)
	f.comments.Comments["c1"] = &models.Comment{
		ID: "c1", ArticleSlug: "go/concurrency", AuthorName: "reader",
		Approved: true, CreatedAt: t2,
	}

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.RecentActivity) != 2 {
		t.Fatalf("Expected 2 activity entries, got %d", len(data.RecentActivity))
	}
	// The newer comment sorts before the older view regardless of fetch order
	if data.RecentActivity[0].Type != models.ActivityTypeComment {
		t.Errorf("Expected comment first, got %s", data.RecentActivity[0].Type)
	}
	if data.RecentActivity[1].Type != models.ActivityTypeView {
		t.Errorf("Expected view second, got %s", data.RecentActivity[1].Type)
	}
}

func TestGetDashboardData_RecentActivityTimestamps(t *testing.T) {
	f := setupAnalytics(t)

	recent := time.Now().Add(-5 * time.Minute)
	old := time.Now().Add(-40 * 24 * time.Hour)

	f.comments.Comments["c1"] = &models.Comment{
		ID: "c1", ArticleSlug: "go/concurrency", AuthorName: "reader",
		Approved: true, CreatedAt: recent,
	}
	f.comments.Comments["c2"] = &models.Comment{
		ID: "c2", ArticleSlug: "go/generics", AuthorName: "reader",
		Approved: true, CreatedAt: old,
	}

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.RecentActivity) != 2 {
		t.Fatalf("Expected 2 activity entries, got %d", len(data.RecentActivity))
	}
	if data.RecentActivity[0].Timestamp != "5m ago" {
		t.Errorf("Expected \"5m ago\", got %q", data.RecentActivity[0].Timestamp)
	}
	if data.RecentActivity[1].Timestamp != old.Format("Jan 2, 2006") {
		t.Errorf("Expected absolute date, got %q", data.RecentActivity[1].Timestamp)
	}
}

func TestGetDashboardData_RecentActivityTruncation(t *testing.T) {
	f := setupAnalytics(t)

	// 10 views and 10 comments fill the limit of 20 exactly; verify the
	// merged feed is globally ordered, not grouped by source
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		at := base.Add(time.Duration(i*2) * time.Minute)
		f.addStat(f.articles, "go/article-"+string(rune('a'+i)), int64(i), 0, &at)

		commentAt := base.Add(time.Duration(i*2+1) * time.Minute)
		id := "c" + string(rune('a'+i))
		f.comments.Comments[id] = &models.Comment{
			ID: id, ArticleSlug: "go/article-" + string(rune('a'+i)),
			AuthorName: "reader", Approved: true, CreatedAt: commentAt,
		}
	}

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.RecentActivity) != 20 {
		t.Fatalf("Expected 20 activity entries, got %d", len(data.RecentActivity))
	}
	for i := 1; i < len(data.RecentActivity); i++ {
		if data.RecentActivity[i].OccurredAt.After(data.RecentActivity[i-1].OccurredAt) {
			t.Fatalf("Activity feed out of order at index %d", i)
		}
	}
	// Sources interleave when their timestamps do
	if data.RecentActivity[0].Type == data.RecentActivity[1].Type {
		t.Errorf("Expected interleaved sources, got %s then %s",
			data.RecentActivity[0].Type, data.RecentActivity[1].Type)
	}
}

func TestGetDashboardData_ContentCounts(t *testing.T) {
	f := setupAnalytics(t)

	f.addArticle("go", "concurrency", "Concurrency Patterns", true)
	f.addArticle("go", "generics", "Generics in Practice", true)
	f.addArticle("go", "drafts", "Unfinished", false)
	f.content.Items["n1"] = &models.Content{ID: "n1", Type: models.ContentTypeNote, Slug: "til", Title: "TIL", Published: true, CreatedAt: time.Now()}
	f.content.Items["p1"] = &models.Content{ID: "p1", Type: models.ContentTypeProject, Slug: "cli", Title: "CLI", Published: false, CreatedAt: time.Now()}

	data := f.analytics.GetDashboardData(context.Background())

	counts := data.ContentCounts
	if counts.PublishedArticles != 2 || counts.DraftArticles != 1 {
		t.Errorf("Expected 2 published / 1 draft articles, got %d/%d",
			counts.PublishedArticles, counts.DraftArticles)
	}
	if counts.PublishedArticles+counts.DraftArticles != 3 {
		t.Errorf("Published + draft should equal the article total")
	}
	if counts.PublishedNotes != 1 || counts.PublishedProjects != 0 || counts.DraftProjects != 1 {
		t.Errorf("Unexpected note/project counts: %+v", counts)
	}
}

func TestGetDashboardData_TrendsAreZero(t *testing.T) {
	f := setupAnalytics(t)

	f.addStat(f.articles, "go/concurrency", 1000, 100, nil)

	data := f.analytics.GetDashboardData(context.Background())

	if data.Trends != (models.TrendData{}) {
		t.Errorf("Expected zero trend data, got %+v", data.Trends)
	}
}

func TestGetDashboardData_TitleLookupFailureFallsBackToSlug(t *testing.T) {
	f := setupAnalytics(t)

	f.addArticle("go", "concurrency", "Concurrency Patterns", true)
	f.addStat(f.articles, "go/concurrency", 100, 10, nil)
	f.content.LookupError = errors.New("collection unreachable")

	data := f.analytics.GetDashboardData(context.Background())

	if len(data.TopArticles) != 1 {
		t.Fatalf("Expected 1 top article, got %d", len(data.TopArticles))
	}
	if data.TopArticles[0].Title != "go/concurrency" {
		t.Errorf("Expected raw slug on lookup failure, got %q", data.TopArticles[0].Title)
	}
}

func TestGetDashboardData_CachedPayload(t *testing.T) {
	mr := miniredis.RunT(t)

	content := mocks.NewMockContentRepository()
	articles := mocks.NewMockStatsRepository()
	repos := &repository.Repositories{
		Content:      content,
		ArticleStats: articles,
		PageStats:    mocks.NewMockStatsRepository(),
		Comment:      mocks.NewMockCommentRepository(),
		Subscriber:   mocks.NewMockSubscriberRepository(),
	}
	cfg := &config.Config{
		Analytics: config.AnalyticsConfig{TopN: 10, ActivityLimit: 20, CacheTTL: time.Minute},
		Redis:     config.RedisConfig{Addr: mr.Addr()},
	}

	analytics := service.NewServices(repos, cfg, zerolog.Nop()).Analytics

	articles.Stats["go/concurrency"] = &models.Stat{Slug: "go/concurrency", Views: 100, Likes: 10}

	first := analytics.GetDashboardData(context.Background())
	if first.Totals.Views != 100 {
		t.Fatalf("Expected 100 views, got %d", first.Totals.Views)
	}

	// Mutating the store has no effect until the cache expires
	articles.Stats["go/concurrency"].Views = 999

	second := analytics.GetDashboardData(context.Background())
	if second.Totals.Views != 100 {
		t.Errorf("Expected cached payload with 100 views, got %d", second.Totals.Views)
	}

	mr.FastForward(2 * time.Minute)

	third := analytics.GetDashboardData(context.Background())
	if third.Totals.Views != 999 {
		t.Errorf("Expected fresh payload with 999 views, got %d", third.Totals.Views)
	}
}
