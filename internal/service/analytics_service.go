package service

import (
	"context"
	"sort"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/pkg/timeutil"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// titleCacheSize bounds the in-process memo of slug -> title lookups
const titleCacheSize = 512

// analyticsService is the concrete implementation of AnalyticsService.
// It composes six independent read-only aggregations into the dashboard
// payload. Every aggregation degrades to its zero value on failure; the
// dashboard never returns an error to its caller.
type analyticsService struct {
	repos      *repository.Repositories
	cfg        *config.AnalyticsConfig
	cache      DashboardCache
	titleCache *lru.Cache[string, string]
	log        zerolog.Logger
}

// newAnalyticsService creates a new AnalyticsService
func newAnalyticsService(repos *repository.Repositories, cfg *config.AnalyticsConfig, cache DashboardCache, log zerolog.Logger) *analyticsService {
	titleCache, _ := lru.New[string, string](titleCacheSize)

	return &analyticsService{
		repos:      repos,
		cfg:        cfg,
		cache:      cache,
		titleCache: titleCache,
		log:        log.With().Str("service", "analytics").Logger(),
	}
}

// GetDashboardData assembles the full dashboard payload. The six
// sub-aggregations are mutually independent and run concurrently; a failing
// section is logged and zeroed without affecting the others.
func (s *analyticsService) GetDashboardData(ctx context.Context) *models.DashboardData {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx); ok {
			return data
		}
	}

	data := &models.DashboardData{
		TopArticles:    []models.TopContent{},
		TopPages:       []models.TopContent{},
		RecentActivity: []models.ActivityEntry{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data.Totals = s.totalStats(gctx)
		return nil
	})
	g.Go(func() error {
		data.TopArticles = s.topContent(gctx, s.repos.ArticleStats, true)
		return nil
	})
	g.Go(func() error {
		data.TopPages = s.topContent(gctx, s.repos.PageStats, false)
		return nil
	})
	g.Go(func() error {
		data.RecentActivity = s.recentActivity(gctx)
		return nil
	})
	g.Go(func() error {
		data.ContentCounts = s.contentCounts(gctx)
		return nil
	})
	g.Go(func() error {
		data.Engagement = s.engagement(gctx)
		return nil
	})

	// Sub-aggregations swallow their own errors, so Wait only joins.
	g.Wait()

	data.Trends = s.trends()

	if s.cache != nil {
		s.cache.Set(ctx, data)
	}

	return data
}

// totalStats sums views and likes across both stat tables and counts
// approved comments and confirmed subscribers
func (s *analyticsService) totalStats(ctx context.Context) models.TotalStats {
	articleTotals, err := s.repos.ArticleStats.Totals(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "totals").Msg("Article stat totals query failed")
		return models.TotalStats{}
	}

	pageTotals, err := s.repos.PageStats.Totals(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "totals").Msg("Page stat totals query failed")
		return models.TotalStats{}
	}

	comments, err := s.repos.Comment.CountByApproved(ctx, true)
	if err != nil {
		s.log.Error().Err(err).Str("section", "totals").Msg("Approved comment count query failed")
		return models.TotalStats{}
	}

	subscribers, err := s.repos.Subscriber.CountConfirmed(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "totals").Msg("Confirmed subscriber count query failed")
		return models.TotalStats{}
	}

	return models.TotalStats{
		Views:       articleTotals.Views + pageTotals.Views,
		Likes:       articleTotals.Likes + pageTotals.Likes,
		Comments:    comments,
		Subscribers: subscribers,
	}
}

// topContent returns the most viewed stat records joined to their content
// titles. The title lookup is batched into one multi-key query; a record
// with no matching content keeps its raw slug as the title.
func (s *analyticsService) topContent(ctx context.Context, statsRepo repository.StatsRepository, composite bool) []models.TopContent {
	section := "top_pages"
	if composite {
		section = "top_articles"
	}

	stats, err := statsRepo.TopByViews(ctx, s.cfg.TopN)
	if err != nil {
		s.log.Error().Err(err).Str("section", section).Msg("Top-by-views query failed")
		return []models.TopContent{}
	}

	titles := s.resolveTitles(ctx, stats, composite, section)

	top := make([]models.TopContent, 0, len(stats))
	for _, stat := range stats {
		title, ok := titles[stat.Slug]
		if !ok {
			title = stat.Slug
		}
		top = append(top, models.TopContent{
			Slug:  stat.Slug,
			Title: title,
			Views: stat.Views,
			Likes: stat.Likes,
		})
	}
	return top
}

// resolveTitles maps stat slugs to content titles, consulting the LRU memo
// before issuing a single batched query for the misses. Lookup failure is
// logged and leaves the misses unresolved, which callers render as raw slugs.
func (s *analyticsService) resolveTitles(ctx context.Context, stats []*models.Stat, composite bool, section string) map[string]string {
	titles := make(map[string]string, len(stats))
	var misses []string
	for _, stat := range stats {
		if title, ok := s.titleCache.Get(stat.Slug); ok {
			titles[stat.Slug] = title
		} else {
			misses = append(misses, stat.Slug)
		}
	}
	if len(misses) == 0 {
		return titles
	}

	var resolved map[string]string
	var err error
	if composite {
		resolved, err = s.repos.Content.ArticleTitlesByCompositeSlugs(ctx, misses)
	} else {
		resolved, err = s.repos.Content.PageTitlesBySlugs(ctx, misses)
	}
	if err != nil {
		s.log.Error().Err(err).Str("section", section).Msg("Title lookup query failed")
		return titles
	}

	for slug, title := range resolved {
		titles[slug] = title
		s.titleCache.Add(slug, title)
	}
	return titles
}

// recentActivity merges the most recently viewed stat records with the most
// recent approved comments into one feed. The merged feed is ordered by the
// underlying time value, never the formatted timestamp string.
func (s *analyticsService) recentActivity(ctx context.Context) []models.ActivityEntry {
	half := s.cfg.ActivityLimit / 2

	views, err := s.repos.ArticleStats.RecentlyViewed(ctx, half)
	if err != nil {
		s.log.Error().Err(err).Str("section", "recent_activity").Msg("Recently viewed query failed")
		return []models.ActivityEntry{}
	}

	comments, err := s.repos.Comment.RecentApproved(ctx, half)
	if err != nil {
		s.log.Error().Err(err).Str("section", "recent_activity").Msg("Recent comments query failed")
		return []models.ActivityEntry{}
	}

	now := time.Now()
	entries := make([]models.ActivityEntry, 0, len(views)+len(comments))

	for _, stat := range views {
		if stat.LastViewedAt == nil {
			continue
		}
		entries = append(entries, models.ActivityEntry{
			Type:       models.ActivityTypeView,
			Slug:       stat.Slug,
			Timestamp:  timeutil.Relative(*stat.LastViewedAt, now),
			OccurredAt: *stat.LastViewedAt,
		})
	}
	for _, comment := range comments {
		entries = append(entries, models.ActivityEntry{
			Type:       models.ActivityTypeComment,
			Slug:       comment.ArticleSlug,
			Detail:     comment.AuthorName,
			Timestamp:  timeutil.Relative(comment.CreatedAt, now),
			OccurredAt: comment.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})

	if len(entries) > s.cfg.ActivityLimit {
		entries = entries[:s.cfg.ActivityLimit]
	}
	return entries
}

// contentCounts counts published and draft records per content type
func (s *analyticsService) contentCounts(ctx context.Context) models.ContentCounts {
	counts, err := s.repos.Content.Counts(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "content_counts").Msg("Content counts query failed")
		return models.ContentCounts{}
	}
	return *counts
}

// engagement derives the average and rate metrics from aggregate sums,
// guarding every ratio against a zero denominator
func (s *analyticsService) engagement(ctx context.Context) models.EngagementMetrics {
	articleTotals, err := s.repos.ArticleStats.Totals(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "engagement").Msg("Article stat totals query failed")
		return models.EngagementMetrics{}
	}

	pageTotals, err := s.repos.PageStats.Totals(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "engagement").Msg("Page stat totals query failed")
		return models.EngagementMetrics{}
	}

	articleCount, err := s.repos.Content.CountPublishedArticles(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("section", "engagement").Msg("Article count query failed")
		return models.EngagementMetrics{}
	}

	pending, err := s.repos.Comment.CountByApproved(ctx, false)
	if err != nil {
		s.log.Error().Err(err).Str("section", "engagement").Msg("Pending comment count query failed")
		return models.EngagementMetrics{}
	}

	totalViews := articleTotals.Views + pageTotals.Views
	totalLikes := articleTotals.Likes + pageTotals.Likes

	metrics := models.EngagementMetrics{PendingComments: pending}
	if articleCount > 0 {
		metrics.AvgViewsPerArticle = float64(totalViews) / float64(articleCount)
		metrics.AvgLikesPerArticle = float64(totalLikes) / float64(articleCount)
	}
	if totalViews > 0 {
		metrics.LikeRate = float64(totalLikes) / float64(totalViews) * 100
	}
	return metrics
}

// trends returns month-over-month trend percentages. There is no historical
// snapshot to diff against yet, so every value is zero.
func (s *analyticsService) trends() models.TrendData {
	return models.TrendData{}
}
