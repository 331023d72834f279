package models

import (
	"time"
)

// ContentType discriminates the three kinds of content the site publishes
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeNote    ContentType = "note"
	ContentTypeProject ContentType = "project"
)

// ValidContentTypes defines allowed content types
var ValidContentTypes = map[ContentType]bool{
	ContentTypeArticle: true,
	ContentTypeNote:    true,
	ContentTypeProject: true,
}

// Content represents a piece of site content (article, note, or project)
type Content struct {
	ID        string      `json:"id" db:"id"`
	Type      ContentType `json:"type" db:"type"`
	Slug      string      `json:"slug" db:"slug"`
	TopicSlug string      `json:"topic_slug,omitempty" db:"topic_slug"` // articles only
	Title     string      `json:"title" db:"title"`
	Body      string      `json:"body" db:"body"`
	Published bool        `json:"published" db:"published"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// FullSlug returns the composite "topic/slug" key for articles, or the
// plain slug for notes and projects (which have no topic).
func (c *Content) FullSlug() string {
	if c.TopicSlug != "" {
		return c.TopicSlug + "/" + c.Slug
	}
	return c.Slug
}

// ContentCounts holds published/draft counts per content type
type ContentCounts struct {
	PublishedArticles int `json:"published_articles"`
	DraftArticles     int `json:"draft_articles"`
	PublishedNotes    int `json:"published_notes"`
	DraftNotes        int `json:"draft_notes"`
	PublishedProjects int `json:"published_projects"`
	DraftProjects     int `json:"draft_projects"`
}

// CreateContentRequest is the admin request body for creating content
type CreateContentRequest struct {
	Type      ContentType `json:"type"`
	Slug      string      `json:"slug"`
	TopicSlug string      `json:"topic_slug,omitempty"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Published bool        `json:"published"`
}

// UpdateContentRequest is the admin request body for updating content
type UpdateContentRequest struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
