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

// commentService is the concrete implementation of CommentService
type commentService struct {
	commentRepo repository.CommentRepository
	log         zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(commentRepo repository.CommentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		log:         log.With().Str("service", "comment").Logger(),
	}
}

// Create persists a new comment. Comments always start unapproved and only
// surface on the dashboard once moderated.
func (s *commentService) Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error) {
	comment := &models.Comment{
		ID:          uuid.NewString(),
		ArticleSlug: req.ArticleSlug,
		AuthorName:  req.AuthorName,
		Body:        req.Body,
		Approved:    false,
		CreatedAt:   time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().
		Str("id", comment.ID).
		Str("article_slug", comment.ArticleSlug).
		Msg("Comment created, awaiting moderation")

	return comment, nil
}

// Approve marks a pending comment as approved
func (s *commentService) Approve(ctx context.Context, id string) (bool, error) {
	approved, err := s.commentRepo.Approve(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to approve comment: %w", err)
	}
	if approved {
		s.log.Info().Str("id", id).Msg("Comment approved")
	}
	return approved, nil
}

// Delete removes a comment
func (s *commentService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	if deleted {
		s.log.Info().Str("id", id).Msg("Comment deleted")
	}
	return deleted, nil
}

// ListPending returns comments awaiting moderation
func (s *commentService) ListPending(ctx context.Context, limit int) ([]*models.Comment, error) {
	return s.commentRepo.ListPending(ctx, limit)
}
