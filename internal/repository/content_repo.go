package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
	"github.com/lib/pq"
)

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

// Create inserts a new content record
func (r *contentRepo) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO content (id, type, slug, topic_slug, title, body, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		content.ID, content.Type, content.Slug, content.TopicSlug,
		content.Title, content.Body, content.Published,
		content.CreatedAt, time.Now(),
	)
	return err
}

// Update modifies an existing content record
func (r *contentRepo) Update(ctx context.Context, content *models.Content) error {
	query := `
		UPDATE content SET title = $2, body = $3, published = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		content.ID, content.Title, content.Body, content.Published, time.Now(),
	)
	return err
}

// Delete removes a content record, reporting whether a row was deleted
func (r *contentRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// GetByID retrieves a content record by ID
func (r *contentRepo) GetByID(ctx context.Context, id string) (*models.Content, error) {
	query := `
		SELECT id, type, slug, topic_slug, title, body, published, created_at, updated_at
		FROM content WHERE id = $1
	`

	var content models.Content
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID, &content.Type, &content.Slug, &content.TopicSlug,
		&content.Title, &content.Body, &content.Published,
		&content.CreatedAt, &content.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &content, nil
}

// List retrieves content records filtered by type and optionally by
// published state
func (r *contentRepo) List(ctx context.Context, contentType models.ContentType, published *bool) ([]*models.Content, error) {
	query := `
		SELECT id, type, slug, topic_slug, title, body, published, created_at, updated_at
		FROM content WHERE type = $1
	`
	args := []interface{}{contentType}
	if published != nil {
		query += " AND published = $2"
		args = append(args, *published)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Content
	for rows.Next() {
		var content models.Content
		err := rows.Scan(
			&content.ID, &content.Type, &content.Slug, &content.TopicSlug,
			&content.Title, &content.Body, &content.Published,
			&content.CreatedAt, &content.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &content)
	}
	return items, rows.Err()
}

// Counts returns published/draft counts for each content type
func (r *contentRepo) Counts(ctx context.Context) (*models.ContentCounts, error) {
	query := `
		SELECT type, published, COUNT(*)
		FROM content GROUP BY type, published
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts models.ContentCounts
	for rows.Next() {
		var contentType models.ContentType
		var published bool
		var count int
		if err := rows.Scan(&contentType, &published, &count); err != nil {
			return nil, err
		}

		switch contentType {
		case models.ContentTypeArticle:
			if published {
				counts.PublishedArticles = count
			} else {
				counts.DraftArticles = count
			}
		case models.ContentTypeNote:
			if published {
				counts.PublishedNotes = count
			} else {
				counts.DraftNotes = count
			}
		case models.ContentTypeProject:
			if published {
				counts.PublishedProjects = count
			} else {
				counts.DraftProjects = count
			}
		}
	}
	return &counts, rows.Err()
}

// CountPublishedArticles returns the number of published articles
func (r *contentRepo) CountPublishedArticles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM content WHERE type = 'article' AND published = true",
	).Scan(&count)
	return count, err
}

// ArticleTitlesByCompositeSlugs resolves article titles for a batch of
// composite "topic/article" slugs in a single query. Slugs with no matching
// article are absent from the returned map.
func (r *contentRepo) ArticleTitlesByCompositeSlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	titles := make(map[string]string, len(slugs))
	if len(slugs) == 0 {
		return titles, nil
	}

	query := `
		SELECT topic_slug || '/' || slug, title
		FROM content
		WHERE type = 'article' AND topic_slug || '/' || slug = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug, title string
		if err := rows.Scan(&slug, &title); err != nil {
			return nil, err
		}
		titles[slug] = title
	}
	return titles, rows.Err()
}

// PageTitlesBySlugs resolves titles for a batch of non-article page slugs
// in a single query. Slugs with no matching record are absent from the
// returned map.
func (r *contentRepo) PageTitlesBySlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	titles := make(map[string]string, len(slugs))
	if len(slugs) == 0 {
		return titles, nil
	}

	query := `
		SELECT slug, title
		FROM content
		WHERE type != 'article' AND slug = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slug, title string
		if err := rows.Scan(&slug, &title); err != nil {
			return nil, err
		}
		titles[slug] = title
	}
	return titles, rows.Err()
}
