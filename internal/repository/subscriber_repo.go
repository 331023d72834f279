package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-platform-api/internal/database"
	"github.com/blog-platform-api/internal/models"
)

// subscriberRepo is the concrete implementation of SubscriberRepository
type subscriberRepo struct {
	db *database.DB
}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo(db *database.DB) SubscriberRepository {
	return &subscriberRepo{db: db}
}

// Create inserts a new unconfirmed subscriber, reporting whether a row was
// inserted. A duplicate email is not an error; it reports false.
func (r *subscriberRepo) Create(ctx context.Context, subscriber *models.Subscriber) (bool, error) {
	query := `
		INSERT INTO subscribers (id, email, confirmed, confirm_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query,
		subscriber.ID, subscriber.Email, subscriber.Confirmed,
		subscriber.ConfirmToken, subscriber.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ConfirmByToken confirms the subscriber holding the given token,
// reporting whether a row changed
func (r *subscriberRepo) ConfirmByToken(ctx context.Context, token string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscribers SET confirmed = true, confirmed_at = NOW()
		WHERE confirm_token = $1 AND confirmed = false
	`, token)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a subscriber, reporting whether a row was deleted
func (r *subscriberRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM subscribers WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// CountConfirmed returns the number of confirmed subscribers
func (r *subscriberRepo) CountConfirmed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscribers WHERE confirmed = true",
	).Scan(&count)
	return count, err
}

// DeleteUnconfirmedBefore prunes unconfirmed subscribers created before
// cutoff, returning the number of rows removed
func (r *subscriberRepo) DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM subscribers WHERE confirmed = false AND created_at < $1", cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// StreamAll streams all subscribers for export, oldest first
func (r *subscriberRepo) StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error {
	query := `
		SELECT id, email, confirmed, confirm_token, created_at, confirmed_at
		FROM subscribers ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var subscriber models.Subscriber
		var confirmedAt sql.NullTime

		err := rows.Scan(
			&subscriber.ID, &subscriber.Email, &subscriber.Confirmed,
			&subscriber.ConfirmToken, &subscriber.CreatedAt, &confirmedAt,
		)
		if err != nil {
			return err
		}
		if confirmedAt.Valid {
			subscriber.ConfirmedAt = &confirmedAt.Time
		}

		if err := callback(&subscriber); err != nil {
			return err
		}
	}

	return rows.Err()
}
