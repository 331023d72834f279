package api

import (
	"fmt"
	"net/http"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SubscriberHandler handles newsletter subscription endpoints
type SubscriberHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler
func NewSubscriberHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "subscriber").Logger(),
	}
}

// Subscribe handles POST /v1/subscribers
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errors := validation.ValidateSubscribe(&req); len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return
	}

	subscriber, created, err := h.services.Subscriber.Subscribe(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Subscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	if !created {
		// Duplicate emails get the same response as new ones so the
		// endpoint cannot be probed for existing addresses
		c.JSON(http.StatusAccepted, gin.H{"status": "pending_confirmation"})
		return
	}

	confirmURL := fmt.Sprintf("%s/v1/subscribers/confirm?token=%s",
		h.cfg.Site.BaseURL, subscriber.ConfirmToken)
	h.log.Info().Str("id", subscriber.ID).Str("confirm_url", confirmURL).Msg("Confirmation link issued")

	c.JSON(http.StatusAccepted, gin.H{"status": "pending_confirmation"})
}

// Confirm handles GET /v1/subscribers/confirm?token=...
func (h *SubscriberHandler) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token parameter is required"})
		return
	}

	confirmed, err := h.services.Subscriber.Confirm(c.Request.Context(), token)
	if err != nil {
		h.log.Error().Err(err).Msg("Confirmation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm subscription"})
		return
	}
	if !confirmed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or already used token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

// StreamExport handles GET /v1/admin/subscribers/export?format=...
// Streams the export directly to the response
func (h *SubscriberHandler) StreamExport(c *gin.Context) {
	format := c.Query("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "ndjson" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: csv, ndjson"})
		return
	}

	if err := h.services.Subscriber.StreamAll(c.Request.Context(), c.Writer, format); err != nil {
		h.log.Error().Err(err).Msg("Subscriber export failed")
		// Can't return error JSON after streaming has started
		return
	}
}

// Delete handles DELETE /v1/admin/subscribers/:id
func (h *SubscriberHandler) Delete(c *gin.Context) {
	deleted, err := h.services.Subscriber.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Subscriber deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscriber"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
