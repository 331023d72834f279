package models

import (
	"time"
)

// StatKind identifies which stat table a recording request targets
type StatKind string

const (
	StatKindArticle StatKind = "article"
	StatKindPage    StatKind = "page"
)

// Stat is a per-slug counter record tracking views and likes for a piece
// of content. Article stats use the composite "topic/article" slug; page
// stats use the plain page slug.
type Stat struct {
	Slug         string     `json:"slug" db:"slug"`
	Views        int64      `json:"views" db:"views"`
	Likes        int64      `json:"likes" db:"likes"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty" db:"last_viewed_at"`
}

// StatTotals holds the summed counters over a stat table
type StatTotals struct {
	Views int64
	Likes int64
}

// RecordStatRequest is the request body for the view/like recording endpoints
type RecordStatRequest struct {
	Slug string   `json:"slug"`
	Kind StatKind `json:"kind"`
}
