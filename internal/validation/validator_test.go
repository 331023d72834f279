package validation

import (
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/models"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CreateContentRequest
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid article",
			req: &models.CreateContentRequest{
				Type:      models.ContentTypeArticle,
				Slug:      "concurrency-patterns",
				TopicSlug: "go",
				Title:     "Concurrency Patterns",
				Body:      "...",
			},
			wantErrors: 0,
		},
		{
			name: "valid note without topic",
			req: &models.CreateContentRequest{
				Type:  models.ContentTypeNote,
				Slug:  "til-sort-slice",
				Title: "TIL sort.Slice",
			},
			wantErrors: 0,
		},
		{
			name: "unknown type",
			req: &models.CreateContentRequest{
				Type:  "video",
				Slug:  "concurrency",
				Title: "Concurrency",
			},
			wantErrors: 1,
			wantFields: []string{"type"},
		},
		{
			name: "missing slug",
			req: &models.CreateContentRequest{
				Type:      models.ContentTypeArticle,
				TopicSlug: "go",
				Title:     "Concurrency",
			},
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name: "uppercase slug rejected",
			req: &models.CreateContentRequest{
				Type:      models.ContentTypeArticle,
				Slug:      "Concurrency",
				TopicSlug: "go",
				Title:     "Concurrency",
			},
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name: "article without topic",
			req: &models.CreateContentRequest{
				Type:  models.ContentTypeArticle,
				Slug:  "concurrency",
				Title: "Concurrency",
			},
			wantErrors: 1,
			wantFields: []string{"topic_slug"},
		},
		{
			name: "note with topic rejected",
			req: &models.CreateContentRequest{
				Type:      models.ContentTypeNote,
				Slug:      "til-sort-slice",
				TopicSlug: "go",
				Title:     "TIL sort.Slice",
			},
			wantErrors: 1,
			wantFields: []string{"topic_slug"},
		},
		{
			name: "blank title",
			req: &models.CreateContentRequest{
				Type:      models.ContentTypeArticle,
				Slug:      "concurrency",
				TopicSlug: "go",
				Title:     "   ",
			},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateContent(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %+v", tt.wantErrors, len(errors), errors)
			}
			for _, field := range tt.wantFields {
				if !hasFieldError(errors, field) {
					t.Errorf("Expected error on field %q, got %+v", field, errors)
				}
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CreateCommentRequest
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid comment",
			req: &models.CreateCommentRequest{
				ArticleSlug: "go/concurrency-patterns",
				AuthorName:  "reader",
				Body:        "Great post",
			},
			wantErrors: 0,
		},
		{
			name: "slug missing topic segment",
			req: &models.CreateCommentRequest{
				ArticleSlug: "concurrency-patterns",
				AuthorName:  "reader",
				Body:        "Great post",
			},
			wantErrors: 1,
			wantFields: []string{"article_slug"},
		},
		{
			name: "slug with too many segments",
			req: &models.CreateCommentRequest{
				ArticleSlug: "go/sub/concurrency",
				AuthorName:  "reader",
				Body:        "Great post",
			},
			wantErrors: 1,
			wantFields: []string{"article_slug"},
		},
		{
			name: "whitespace author",
			req: &models.CreateCommentRequest{
				ArticleSlug: "go/concurrency-patterns",
				AuthorName:  "  ",
				Body:        "Great post",
			},
			wantErrors: 1,
			wantFields: []string{"author_name"},
		},
		{
			name: "body at maximum length",
			req: &models.CreateCommentRequest{
				ArticleSlug: "go/concurrency-patterns",
				AuthorName:  "reader",
				Body:        strings.Repeat("x", models.MaxCommentLength),
			},
			wantErrors: 0,
		},
		{
			name: "body over maximum length",
			req: &models.CreateCommentRequest{
				ArticleSlug: "go/concurrency-patterns",
				AuthorName:  "reader",
				Body:        strings.Repeat("x", models.MaxCommentLength+1),
			},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
		{
			name:       "everything missing",
			req:        &models.CreateCommentRequest{},
			wantErrors: 3,
			wantFields: []string{"article_slug", "author_name", "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateComment(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %+v", tt.wantErrors, len(errors), errors)
			}
			for _, field := range tt.wantFields {
				if !hasFieldError(errors, field) {
					t.Errorf("Expected error on field %q, got %+v", field, errors)
				}
			}
		})
	}
}

func TestValidateSubscribe(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		wantErrors int
	}{
		{"valid email", "reader@example.com", 0},
		{"plus addressing", "reader+blog@example.com", 0},
		{"missing email", "", 1},
		{"no domain", "reader@", 1},
		{"no at sign", "reader.example.com", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateSubscribe(&models.SubscribeRequest{Email: tt.email})
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %+v", tt.wantErrors, len(errors), errors)
			}
		})
	}
}

func TestValidateRecordStat(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.RecordStatRequest
		wantErrors int
	}{
		{"valid article slug", &models.RecordStatRequest{Slug: "go/concurrency", Kind: models.StatKindArticle}, 0},
		{"article slug without topic", &models.RecordStatRequest{Slug: "concurrency", Kind: models.StatKindArticle}, 1},
		{"valid page slug", &models.RecordStatRequest{Slug: "about", Kind: models.StatKindPage}, 0},
		{"composite page slug rejected", &models.RecordStatRequest{Slug: "go/about", Kind: models.StatKindPage}, 1},
		{"unknown kind", &models.RecordStatRequest{Slug: "about", Kind: "podcast"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := ValidateRecordStat(tt.req)
			if len(errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %+v", tt.wantErrors, len(errors), errors)
			}
		})
	}
}

func TestIsValidCompositeSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"go/concurrency", true},
		{"go/concurrency-patterns", true},
		{"concurrency", false},
		{"go/", false},
		{"/concurrency", false},
		{"go/sub/concurrency", false},
		{"Go/concurrency", false},
	}

	for _, tt := range tests {
		if got := IsValidCompositeSlug(tt.slug); got != tt.want {
			t.Errorf("IsValidCompositeSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func hasFieldError(errors []ValidationError, field string) bool {
	for _, e := range errors {
		if e.Field == field {
			return true
		}
	}
	return false
}
