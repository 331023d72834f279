package service

import (
	"context"
	"net/http"

	"github.com/blog-platform-api/internal/cache"
	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// AnalyticsService defines the interface for the admin dashboard aggregation
type AnalyticsService interface {
	GetDashboardData(ctx context.Context) *models.DashboardData
}

// ContentService defines the interface for admin content management
type ContentService interface {
	Create(ctx context.Context, req *models.CreateContentRequest) (*models.Content, error)
	Update(ctx context.Context, id string, req *models.UpdateContentRequest) (*models.Content, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (*models.Content, error)
	List(ctx context.Context, contentType models.ContentType, published *bool) ([]*models.Content, error)
}

// StatsService defines the interface for view/like recording
type StatsService interface {
	RecordView(ctx context.Context, req *models.RecordStatRequest) error
	RecordLike(ctx context.Context, req *models.RecordStatRequest) error
}

// CommentService defines the interface for comments and moderation
type CommentService interface {
	Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error)
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context, limit int) ([]*models.Comment, error)
}

// SubscriberService defines the interface for newsletter subscriptions
type SubscriberService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, bool, error)
	Confirm(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	StreamAll(ctx context.Context, w http.ResponseWriter, format string) error
	StartCleanup() error
	StopCleanup()
}

// DashboardCache is the optional read-through cache in front of the
// dashboard aggregation. Both methods are best effort.
type DashboardCache interface {
	Get(ctx context.Context) (*models.DashboardData, bool)
	Set(ctx context.Context, data *models.DashboardData)
}

// Services holds all service interfaces
type Services struct {
	Analytics  AnalyticsService
	Content    ContentService
	Stats      StatsService
	Comment    CommentService
	Subscriber SubscriberService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	var dashboardCache DashboardCache
	if cfg.Redis.Enabled() {
		dashboardCache = cache.NewRedisDashboardCache(&cfg.Redis, cfg.Analytics.CacheTTL, log)
	}

	return &Services{
		Analytics:  newAnalyticsService(repos, &cfg.Analytics, dashboardCache, log),
		Content:    newContentService(repos.Content, log),
		Stats:      newStatsService(repos, log),
		Comment:    newCommentService(repos.Comment, log),
		Subscriber: newSubscriberService(repos.Subscriber, &cfg.Cleanup, log),
	}
}
