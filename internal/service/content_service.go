package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	contentRepo repository.ContentRepository
	log         zerolog.Logger
}

// newContentService creates a new ContentService
func newContentService(contentRepo repository.ContentRepository, log zerolog.Logger) *contentService {
	return &contentService{
		contentRepo: contentRepo,
		log:         log.With().Str("service", "content").Logger(),
	}
}

// Create persists a new content record
func (s *contentService) Create(ctx context.Context, req *models.CreateContentRequest) (*models.Content, error) {
	now := time.Now()
	content := &models.Content{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Slug:      req.Slug,
		TopicSlug: req.TopicSlug,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	s.log.Info().
		Str("id", content.ID).
		Str("type", string(content.Type)).
		Str("slug", content.FullSlug()).
		Msg("Content created")

	return content, nil
}

// Update applies the non-nil fields of req to an existing content record
func (s *contentService) Update(ctx context.Context, id string, req *models.UpdateContentRequest) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if content == nil {
		return nil, nil
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.Published != nil {
		content.Published = *req.Published
	}
	content.UpdatedAt = time.Now()

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	s.log.Info().
		Str("id", content.ID).
		Bool("published", content.Published).
		Msg("Content updated")

	return content, nil
}

// Delete removes a content record
func (s *contentService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.contentRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	if deleted {
		s.log.Info().Str("id", id).Msg("Content deleted")
	}
	return deleted, nil
}

// Get retrieves a content record by ID; nil when not found
func (s *contentService) Get(ctx context.Context, id string) (*models.Content, error) {
	return s.contentRepo.GetByID(ctx, id)
}

// List retrieves content records filtered by type and optional published state
func (s *contentService) List(ctx context.Context, contentType models.ContentType, published *bool) ([]*models.Content, error) {
	return s.contentRepo.List(ctx, contentType, published)
}
