package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blog-platform-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidSlug reports whether s is a lowercase hyphenated slug
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// IsValidCompositeSlug reports whether s splits into exactly two valid
// slugs on a single "/" separator
func IsValidCompositeSlug(s string) bool {
	topic, item, ok := strings.Cut(s, "/")
	return ok && IsValidSlug(topic) && IsValidSlug(item)
}

// ValidateContent validates an admin create-content request
func ValidateContent(req *models.CreateContentRequest) []ValidationError {
	var errors []ValidationError

	if !models.ValidContentTypes[req.Type] {
		errors = append(errors, ValidationError{Field: "type", Message: "type must be one of: article, note, project", Value: string(req.Type)})
	}

	if req.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !IsValidSlug(req.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be lowercase alphanumeric with hyphens", Value: req.Slug})
	}

	// Articles carry a topic; notes and projects must not
	if req.Type == models.ContentTypeArticle {
		if req.TopicSlug == "" {
			errors = append(errors, ValidationError{Field: "topic_slug", Message: "topic_slug is required for articles"})
		} else if !IsValidSlug(req.TopicSlug) {
			errors = append(errors, ValidationError{Field: "topic_slug", Message: "topic_slug must be lowercase alphanumeric with hyphens", Value: req.TopicSlug})
		}
	} else if req.TopicSlug != "" {
		errors = append(errors, ValidationError{Field: "topic_slug", Message: "topic_slug is only valid for articles", Value: req.TopicSlug})
	}

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	return errors
}

// ValidateComment validates a public create-comment request
func ValidateComment(req *models.CreateCommentRequest) []ValidationError {
	var errors []ValidationError

	if req.ArticleSlug == "" {
		errors = append(errors, ValidationError{Field: "article_slug", Message: "article_slug is required"})
	} else if !IsValidCompositeSlug(req.ArticleSlug) {
		errors = append(errors, ValidationError{Field: "article_slug", Message: "article_slug must have the form topic/article", Value: req.ArticleSlug})
	}

	if strings.TrimSpace(req.AuthorName) == "" {
		errors = append(errors, ValidationError{Field: "author_name", Message: "author_name is required"})
	}

	if strings.TrimSpace(req.Body) == "" {
		errors = append(errors, ValidationError{Field: "body", Message: "body is required"})
	} else if utf8.RuneCountInString(req.Body) > models.MaxCommentLength {
		errors = append(errors, ValidationError{Field: "body", Message: "body exceeds maximum length"})
	}

	return errors
}

// ValidateSubscribe validates a public subscribe request
func ValidateSubscribe(req *models.SubscribeRequest) []ValidationError {
	var errors []ValidationError

	if req.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !IsValidEmail(req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: req.Email})
	}

	return errors
}

// ValidateRecordStat validates a view/like recording request
func ValidateRecordStat(req *models.RecordStatRequest) []ValidationError {
	var errors []ValidationError

	switch req.Kind {
	case models.StatKindArticle:
		if !IsValidCompositeSlug(req.Slug) {
			errors = append(errors, ValidationError{Field: "slug", Message: "article slug must have the form topic/article", Value: req.Slug})
		}
	case models.StatKindPage:
		if !IsValidSlug(req.Slug) {
			errors = append(errors, ValidationError{Field: "slug", Message: "slug must be lowercase alphanumeric with hyphens", Value: req.Slug})
		}
	default:
		errors = append(errors, ValidationError{Field: "kind", Message: "kind must be one of: article, page", Value: string(req.Kind)})
	}

	return errors
}
