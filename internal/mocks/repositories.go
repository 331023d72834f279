package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/blog-platform-api/internal/models"
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	Items       map[string]*models.Content
	LookupError error
	CountsError error
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		Items: make(map[string]*models.Content),
	}
}

func (m *MockContentRepository) Create(ctx context.Context, content *models.Content) error {
	m.Items[content.ID] = content
	return nil
}

func (m *MockContentRepository) Update(ctx context.Context, content *models.Content) error {
	m.Items[content.ID] = content
	return nil
}

func (m *MockContentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.Items[id]; !ok {
		return false, nil
	}
	delete(m.Items, id)
	return true, nil
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	return m.Items[id], nil
}

func (m *MockContentRepository) List(ctx context.Context, contentType models.ContentType, published *bool) ([]*models.Content, error) {
	var items []*models.Content
	for _, content := range m.Items {
		if content.Type != contentType {
			continue
		}
		if published != nil && content.Published != *published {
			continue
		}
		items = append(items, content)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (m *MockContentRepository) Counts(ctx context.Context) (*models.ContentCounts, error) {
	if m.CountsError != nil {
		return nil, m.CountsError
	}
	var counts models.ContentCounts
	for _, content := range m.Items {
		switch content.Type {
		case models.ContentTypeArticle:
			if content.Published {
				counts.PublishedArticles++
			} else {
				counts.DraftArticles++
			}
		case models.ContentTypeNote:
			if content.Published {
				counts.PublishedNotes++
			} else {
				counts.DraftNotes++
			}
		case models.ContentTypeProject:
			if content.Published {
				counts.PublishedProjects++
			} else {
				counts.DraftProjects++
			}
		}
	}
	return &counts, nil
}

func (m *MockContentRepository) CountPublishedArticles(ctx context.Context) (int64, error) {
	if m.CountsError != nil {
		return 0, m.CountsError
	}
	var count int64
	for _, content := range m.Items {
		if content.Type == models.ContentTypeArticle && content.Published {
			count++
		}
	}
	return count, nil
}

func (m *MockContentRepository) ArticleTitlesByCompositeSlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	titles := make(map[string]string)
	for _, slug := range slugs {
		for _, content := range m.Items {
			if content.Type == models.ContentTypeArticle && content.FullSlug() == slug {
				titles[slug] = content.Title
			}
		}
	}
	return titles, nil
}

func (m *MockContentRepository) PageTitlesBySlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	titles := make(map[string]string)
	for _, slug := range slugs {
		for _, content := range m.Items {
			if content.Type != models.ContentTypeArticle && content.Slug == slug {
				titles[slug] = content.Title
			}
		}
	}
	return titles, nil
}

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	Stats       map[string]*models.Stat
	TotalsError error
	TopError    error
	RecentError error
	WriteError  error
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{
		Stats: make(map[string]*models.Stat),
	}
}

func (m *MockStatsRepository) Totals(ctx context.Context) (*models.StatTotals, error) {
	if m.TotalsError != nil {
		return nil, m.TotalsError
	}
	var totals models.StatTotals
	for _, stat := range m.Stats {
		totals.Views += stat.Views
		totals.Likes += stat.Likes
	}
	return &totals, nil
}

func (m *MockStatsRepository) TopByViews(ctx context.Context, limit int) ([]*models.Stat, error) {
	if m.TopError != nil {
		return nil, m.TopError
	}
	stats := m.sorted(func(a, b *models.Stat) bool { return a.Views > b.Views })
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (m *MockStatsRepository) RecentlyViewed(ctx context.Context, limit int) ([]*models.Stat, error) {
	if m.RecentError != nil {
		return nil, m.RecentError
	}
	var viewed []*models.Stat
	for _, stat := range m.Stats {
		if stat.LastViewedAt != nil {
			viewed = append(viewed, stat)
		}
	}
	sort.Slice(viewed, func(i, j int) bool {
		return viewed[i].LastViewedAt.After(*viewed[j].LastViewedAt)
	})
	if len(viewed) > limit {
		viewed = viewed[:limit]
	}
	return viewed, nil
}

func (m *MockStatsRepository) IncrementViews(ctx context.Context, slug string) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	now := time.Now()
	stat, ok := m.Stats[slug]
	if !ok {
		stat = &models.Stat{Slug: slug}
		m.Stats[slug] = stat
	}
	stat.Views++
	stat.LastViewedAt = &now
	return nil
}

func (m *MockStatsRepository) IncrementLikes(ctx context.Context, slug string) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	stat, ok := m.Stats[slug]
	if !ok {
		stat = &models.Stat{Slug: slug}
		m.Stats[slug] = stat
	}
	stat.Likes++
	return nil
}

func (m *MockStatsRepository) sorted(less func(a, b *models.Stat) bool) []*models.Stat {
	stats := make([]*models.Stat, 0, len(m.Stats))
	for _, stat := range m.Stats {
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return less(stats[i], stats[j]) })
	return stats
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CountError  error
	RecentError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) Approve(ctx context.Context, id string) (bool, error) {
	comment, ok := m.Comments[id]
	if !ok || comment.Approved {
		return false, nil
	}
	comment.Approved = true
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) ListPending(ctx context.Context, limit int) ([]*models.Comment, error) {
	pending := m.filter(false)
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *MockCommentRepository) CountByApproved(ctx context.Context, approved bool) (int64, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return int64(len(m.filter(approved))), nil
}

func (m *MockCommentRepository) RecentApproved(ctx context.Context, limit int) ([]*models.Comment, error) {
	if m.RecentError != nil {
		return nil, m.RecentError
	}
	approved := m.filter(true)
	sort.Slice(approved, func(i, j int) bool {
		return approved[i].CreatedAt.After(approved[j].CreatedAt)
	})
	if len(approved) > limit {
		approved = approved[:limit]
	}
	return approved, nil
}

func (m *MockCommentRepository) filter(approved bool) []*models.Comment {
	var comments []*models.Comment
	for _, comment := range m.Comments {
		if comment.Approved == approved {
			comments = append(comments, comment)
		}
	}
	return comments
}

// MockSubscriberRepository is a mock implementation of SubscriberRepository
type MockSubscriberRepository struct {
	Subscribers map[string]*models.Subscriber
	CountError  error
}

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{
		Subscribers: make(map[string]*models.Subscriber),
	}
}

func (m *MockSubscriberRepository) Create(ctx context.Context, subscriber *models.Subscriber) (bool, error) {
	for _, existing := range m.Subscribers {
		if existing.Email == subscriber.Email {
			return false, nil
		}
	}
	m.Subscribers[subscriber.ID] = subscriber
	return true, nil
}

func (m *MockSubscriberRepository) ConfirmByToken(ctx context.Context, token string) (bool, error) {
	for _, subscriber := range m.Subscribers {
		if subscriber.ConfirmToken == token && !subscriber.Confirmed {
			now := time.Now()
			subscriber.Confirmed = true
			subscriber.ConfirmedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSubscriberRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.Subscribers[id]; !ok {
		return false, nil
	}
	delete(m.Subscribers, id)
	return true, nil
}

func (m *MockSubscriberRepository) CountConfirmed(ctx context.Context) (int64, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	var count int64
	for _, subscriber := range m.Subscribers {
		if subscriber.Confirmed {
			count++
		}
	}
	return count, nil
}

func (m *MockSubscriberRepository) DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var pruned int64
	for id, subscriber := range m.Subscribers {
		if !subscriber.Confirmed && subscriber.CreatedAt.Before(cutoff) {
			delete(m.Subscribers, id)
			pruned++
		}
	}
	return pruned, nil
}

func (m *MockSubscriberRepository) StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error {
	subscribers := make([]*models.Subscriber, 0, len(m.Subscribers))
	for _, subscriber := range m.Subscribers {
		subscribers = append(subscribers, subscriber)
	}
	sort.Slice(subscribers, func(i, j int) bool {
		return subscribers[i].CreatedAt.Before(subscribers[j].CreatedAt)
	})
	for _, subscriber := range subscribers {
		if err := callback(subscriber); err != nil {
			return err
		}
	}
	return nil
}
