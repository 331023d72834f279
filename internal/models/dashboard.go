package models

import (
	"time"
)

// ActivityType tags a recent-activity entry with its origin
type ActivityType string

const (
	ActivityTypeView    ActivityType = "view"
	ActivityTypeComment ActivityType = "comment"
)

// TotalStats holds the site-wide counters shown at the top of the dashboard
type TotalStats struct {
	Views       int64 `json:"views"`
	Likes       int64 `json:"likes"`
	Comments    int64 `json:"comments"`
	Subscribers int64 `json:"subscribers"`
}

// TopContent is one row of a top-N list: a stat record joined to its
// content record for a display title. Title falls back to the raw slug
// when no content record matches.
type TopContent struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

// ActivityEntry is one row of the recent-activity feed. Timestamp is the
// pre-formatted relative time for display; OccurredAt carries the underlying
// time value the merged feed is ordered by.
type ActivityEntry struct {
	Type       ActivityType `json:"type"`
	Slug       string       `json:"slug"`
	Detail     string       `json:"detail,omitempty"`
	Timestamp  string       `json:"timestamp"`
	OccurredAt time.Time    `json:"-"`
}

// EngagementMetrics holds the derived engagement ratios
type EngagementMetrics struct {
	AvgViewsPerArticle float64 `json:"avg_views_per_article"`
	AvgLikesPerArticle float64 `json:"avg_likes_per_article"`
	LikeRate           float64 `json:"like_rate"`
	PendingComments    int64   `json:"pending_comments"`
}

// TrendData holds month-over-month trend percentages. All four values are
// currently always zero: there is no historical snapshot to diff against.
type TrendData struct {
	ViewsTrend       float64 `json:"views_trend"`
	LikesTrend       float64 `json:"likes_trend"`
	CommentsTrend    float64 `json:"comments_trend"`
	SubscribersTrend float64 `json:"subscribers_trend"`
}

// DashboardData is the full analytics payload rendered by the admin dashboard
type DashboardData struct {
	Totals         TotalStats        `json:"totals"`
	Trends         TrendData         `json:"trends"`
	TopArticles    []TopContent      `json:"top_articles"`
	TopPages       []TopContent      `json:"top_pages"`
	RecentActivity []ActivityEntry   `json:"recent_activity"`
	ContentCounts  ContentCounts     `json:"content_counts"`
	Engagement     EngagementMetrics `json:"engagement"`
}
