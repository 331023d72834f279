package models

import (
	"time"
)

// Comment represents a reader comment on an article. Comments are created
// unapproved and only count toward dashboard totals once approved.
type Comment struct {
	ID          string    `json:"id" db:"id"`
	ArticleSlug string    `json:"article_slug" db:"article_slug"` // composite "topic/article"
	AuthorName  string    `json:"author_name" db:"author_name"`
	Body        string    `json:"body" db:"body"`
	Approved    bool      `json:"approved" db:"approved"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// MaxCommentLength is the maximum allowed length of a comment body in runes
const MaxCommentLength = 4000

// CreateCommentRequest is the public request body for posting a comment
type CreateCommentRequest struct {
	ArticleSlug string `json:"article_slug"`
	AuthorName  string `json:"author_name"`
	Body        string `json:"body"`
}
