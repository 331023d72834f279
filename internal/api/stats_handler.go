package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/service"
	"github.com/blog-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StatsHandler handles the view/like recording endpoints
type StatsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(services *service.Services, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		services: services,
		log:      log.With().Str("handler", "stats").Logger(),
	}
}

// RecordView handles POST /v1/stats/views
func (h *StatsHandler) RecordView(c *gin.Context) {
	req, ok := h.bindRecordRequest(c)
	if !ok {
		return
	}

	if err := h.services.Stats.RecordView(c.Request.Context(), req); err != nil {
		h.log.Error().Err(err).Str("slug", req.Slug).Msg("View recording failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}
	c.Status(http.StatusAccepted)
}

// RecordLike handles POST /v1/stats/likes
func (h *StatsHandler) RecordLike(c *gin.Context) {
	req, ok := h.bindRecordRequest(c)
	if !ok {
		return
	}

	if err := h.services.Stats.RecordLike(c.Request.Context(), req); err != nil {
		h.log.Error().Err(err).Str("slug", req.Slug).Msg("Like recording failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record like"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *StatsHandler) bindRecordRequest(c *gin.Context) (*models.RecordStatRequest, bool) {
	var req models.RecordStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	if errors := validation.ValidateRecordStat(&req); len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return nil, false
	}
	return &req, true
}
