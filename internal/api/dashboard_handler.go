package api

import (
	"net/http"

	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardHandler handles the admin dashboard endpoint
type DashboardHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(services *service.Services, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		services: services,
		log:      log.With().Str("handler", "dashboard").Logger(),
	}
}

// GetDashboard handles GET /v1/admin/dashboard.
// The aggregation never fails; a partial store outage shows up as zeroed
// sections, not an error response.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data := h.services.Analytics.GetDashboardData(c.Request.Context())
	c.JSON(http.StatusOK, data)
}
