package api

import (
	"net/http"
	"strconv"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles public comment posting and admin moderation
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Create handles POST /v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errors := validation.ValidateComment(&req); len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Comment creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListPending handles GET /v1/admin/comments/pending?limit=...
func (h *CommentHandler) ListPending(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	comments, err := h.services.Comment.ListPending(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Pending comment list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending comments"})
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"items": comments})
}

// Approve handles POST /v1/admin/comments/:id/approve
func (h *CommentHandler) Approve(c *gin.Context) {
	approved, err := h.services.Comment.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Comment approval failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve comment"})
		return
	}
	if !approved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or already approved"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /v1/admin/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	deleted, err := h.services.Comment.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Comment deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
