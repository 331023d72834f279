package repository

import (
	"context"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_slug, author_name, body, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleSlug, comment.AuthorName,
		comment.Body, comment.Approved, createdAt,
	)
	return err
}

// Approve marks a comment as approved, reporting whether a row changed
func (r *commentRepo) Approve(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE comments SET approved = true WHERE id = $1 AND approved = false", id,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a comment, reporting whether a row was deleted
func (r *commentRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ListPending returns unapproved comments awaiting moderation, oldest first
func (r *commentRepo) ListPending(ctx context.Context, limit int) ([]*models.Comment, error) {
	query := `
		SELECT id, article_slug, author_name, body, approved, created_at
		FROM comments WHERE approved = false
		ORDER BY created_at ASC LIMIT $1
	`
	return r.queryComments(ctx, query, limit)
}

// CountByApproved counts comments in the given approval state
func (r *commentRepo) CountByApproved(ctx context.Context, approved bool) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE approved = $1", approved,
	).Scan(&count)
	return count, err
}

// RecentApproved returns the most recent approved comments, newest first
func (r *commentRepo) RecentApproved(ctx context.Context, limit int) ([]*models.Comment, error) {
	query := `
		SELECT id, article_slug, author_name, body, approved, created_at
		FROM comments WHERE approved = true
		ORDER BY created_at DESC LIMIT $1
	`
	return r.queryComments(ctx, query, limit)
}

func (r *commentRepo) queryComments(ctx context.Context, query string, limit int) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.ArticleSlug, &comment.AuthorName,
			&comment.Body, &comment.Approved, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
