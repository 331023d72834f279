package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentHandler handles public and admin content endpoints
type ContentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// ListPublished handles GET /v1/content?type=...
// Only published records are visible publicly.
func (h *ContentHandler) ListPublished(c *gin.Context) {
	contentType, ok := contentTypeParam(c)
	if !ok {
		return
	}

	published := true
	items, err := h.services.Content.List(c.Request.Context(), contentType, &published)
	if err != nil {
		h.log.Error().Err(err).Msg("Content list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content"})
		return
	}
	if items == nil {
		items = []*models.Content{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListAll handles GET /v1/admin/content?type=...&published=...
func (h *ContentHandler) ListAll(c *gin.Context) {
	contentType, ok := contentTypeParam(c)
	if !ok {
		return
	}

	var published *bool
	switch c.Query("published") {
	case "":
	case "true":
		v := true
		published = &v
	case "false":
		v := false
		published = &v
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "published must be true or false"})
		return
	}

	items, err := h.services.Content.List(c.Request.Context(), contentType, published)
	if err != nil {
		h.log.Error().Err(err).Msg("Content list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content"})
		return
	}
	if items == nil {
		items = []*models.Content{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /v1/admin/content
func (h *ContentHandler) Create(c *gin.Context) {
	var req models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errors := validation.ValidateContent(&req); len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return
	}

	content, err := h.services.Content.Create(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Content creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, content)
}

// Get handles GET /v1/admin/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.services.Content.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Content lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// Update handles PATCH /v1/admin/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	var req models.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	content, err := h.services.Content.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Content update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// Delete handles DELETE /v1/admin/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	deleted, err := h.services.Content.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Content deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func contentTypeParam(c *gin.Context) (models.ContentType, bool) {
	contentType := models.ContentType(c.Query("type"))
	if contentType == "" {
		contentType = models.ContentTypeArticle
	}
	if !models.ValidContentTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of: article, note, project"})
		return "", false
	}
	return contentType, true
}
