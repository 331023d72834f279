package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// statsRepo is the concrete implementation of StatsRepository. The same
// implementation serves both stat tables; table is fixed at construction
// and never interpolated from request data.
type statsRepo struct {
	db    *database.DB
	table string
}

// NewStatsRepo creates a stats repository over the given stat table
// ("article_stats" or "page_stats")
func NewStatsRepo(db *database.DB, table string) StatsRepository {
	return &statsRepo{db: db, table: table}
}

// Totals sums the view and like counters over the whole table
func (r *statsRepo) Totals(ctx context.Context) (*models.StatTotals, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(views), 0), COALESCE(SUM(likes), 0) FROM %s", r.table,
	)

	var totals models.StatTotals
	err := r.db.QueryRowContext(ctx, query).Scan(&totals.Views, &totals.Likes)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// TopByViews returns the stat records with the highest view counts.
// Ordering among tied view counts is whatever the store returns.
func (r *statsRepo) TopByViews(ctx context.Context, limit int) ([]*models.Stat, error) {
	query := fmt.Sprintf(`
		SELECT slug, views, likes, last_viewed_at
		FROM %s ORDER BY views DESC LIMIT $1
	`, r.table)

	return r.queryStats(ctx, query, limit)
}

// RecentlyViewed returns the stat records most recently touched by a view,
// newest first. Records never viewed are excluded.
func (r *statsRepo) RecentlyViewed(ctx context.Context, limit int) ([]*models.Stat, error) {
	query := fmt.Sprintf(`
		SELECT slug, views, likes, last_viewed_at
		FROM %s WHERE last_viewed_at IS NOT NULL
		ORDER BY last_viewed_at DESC LIMIT $1
	`, r.table)

	return r.queryStats(ctx, query, limit)
}

// IncrementViews upserts the stat record for slug, incrementing its view
// counter and stamping last_viewed_at
func (r *statsRepo) IncrementViews(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (slug, views, likes, last_viewed_at)
		VALUES ($1, 1, 0, NOW())
		ON CONFLICT (slug) DO UPDATE
		SET views = %s.views + 1, last_viewed_at = NOW()
	`, r.table, r.table)

	_, err := r.db.ExecContext(ctx, query, slug)
	return err
}

// IncrementLikes upserts the stat record for slug, incrementing its like
// counter. Likes do not touch last_viewed_at.
func (r *statsRepo) IncrementLikes(ctx context.Context, slug string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (slug, views, likes)
		VALUES ($1, 0, 1)
		ON CONFLICT (slug) DO UPDATE
		SET likes = %s.likes + 1
	`, r.table, r.table)

	_, err := r.db.ExecContext(ctx, query, slug)
	return err
}

func (r *statsRepo) queryStats(ctx context.Context, query string, limit int) ([]*models.Stat, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.Stat
	for rows.Next() {
		var stat models.Stat
		var lastViewedAt sql.NullTime

		if err := rows.Scan(&stat.Slug, &stat.Views, &stat.Likes, &lastViewedAt); err != nil {
			return nil, err
		}
		if lastViewedAt.Valid {
			stat.LastViewedAt = &lastViewedAt.Time
		}
		stats = append(stats, &stat)
	}
	return stats, rows.Err()
}
