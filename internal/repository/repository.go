package repository

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// ContentRepository defines the interface for content record operations
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Content, error)
	List(ctx context.Context, contentType models.ContentType, published *bool) ([]*models.Content, error)
	Counts(ctx context.Context) (*models.ContentCounts, error)
	CountPublishedArticles(ctx context.Context) (int64, error)
	ArticleTitlesByCompositeSlugs(ctx context.Context, slugs []string) (map[string]string, error)
	PageTitlesBySlugs(ctx context.Context, slugs []string) (map[string]string, error)
}

// StatsRepository defines the interface for per-slug view/like counters.
// Two instances exist, one over article stats and one over page stats.
type StatsRepository interface {
	Totals(ctx context.Context) (*models.StatTotals, error)
	TopByViews(ctx context.Context, limit int) ([]*models.Stat, error)
	RecentlyViewed(ctx context.Context, limit int) ([]*models.Stat, error)
	IncrementViews(ctx context.Context, slug string) error
	IncrementLikes(ctx context.Context, slug string) error
}

// CommentRepository defines the interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context, limit int) ([]*models.Comment, error)
	CountByApproved(ctx context.Context, approved bool) (int64, error)
	RecentApproved(ctx context.Context, limit int) ([]*models.Comment, error)
}

// SubscriberRepository defines the interface for newsletter subscriber operations
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) (bool, error)
	ConfirmByToken(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountConfirmed(ctx context.Context) (int64, error)
	DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content      ContentRepository
	ArticleStats StatsRepository
	PageStats    StatsRepository
	Comment      CommentRepository
	Subscriber   SubscriberRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Content:      NewContentRepo(db),
		ArticleStats: NewStatsRepo(db, "article_stats"),
		PageStats:    NewStatsRepo(db, "page_stats"),
		Comment:      NewCommentRepo(db),
		Subscriber:   NewSubscriberRepo(db),
	}
}
