package service

import (
	"context"
	"fmt"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/rs/zerolog"
)

// statsService is the concrete implementation of StatsService. It routes
// each recording request to the stat table matching its kind.
type statsService struct {
	articleStats repository.StatsRepository
	pageStats    repository.StatsRepository
	log          zerolog.Logger
}

// newStatsService creates a new StatsService
func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		articleStats: repos.ArticleStats,
		pageStats:    repos.PageStats,
		log:          log.With().Str("service", "stats").Logger(),
	}
}

// RecordView increments the view counter for the slug, creating the stat
// record on first view
func (s *statsService) RecordView(ctx context.Context, req *models.RecordStatRequest) error {
	repo, err := s.repoFor(req.Kind)
	if err != nil {
		return err
	}

	if err := repo.IncrementViews(ctx, req.Slug); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}

	s.log.Debug().Str("slug", req.Slug).Str("kind", string(req.Kind)).Msg("View recorded")
	return nil
}

// RecordLike increments the like counter for the slug, creating the stat
// record on first like
func (s *statsService) RecordLike(ctx context.Context, req *models.RecordStatRequest) error {
	repo, err := s.repoFor(req.Kind)
	if err != nil {
		return err
	}

	if err := repo.IncrementLikes(ctx, req.Slug); err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}

	s.log.Debug().Str("slug", req.Slug).Str("kind", string(req.Kind)).Msg("Like recorded")
	return nil
}

func (s *statsService) repoFor(kind models.StatKind) (repository.StatsRepository, error) {
	switch kind {
	case models.StatKindArticle:
		return s.articleStats, nil
	case models.StatKindPage:
		return s.pageStats, nil
	default:
		return nil, fmt.Errorf("unknown stat kind: %s", kind)
	}
}
