package api

import (
	"net/http"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	// Handlers
	dashboardHandler := NewDashboardHandler(services, log)
	contentHandler := NewContentHandler(services, log)
	statsHandler := NewStatsHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	subscriberHandler := NewSubscriberHandler(services, cfg, log)

	// Health check and Prometheus metrics
	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/site", siteInfo(&cfg.Site))

		// Public content
		v1.GET("/content", contentHandler.ListPublished)

		// Engagement recording
		stats := v1.Group("/stats")
		{
			stats.POST("/views", statsHandler.RecordView)
			stats.POST("/likes", statsHandler.RecordLike)
		}

		// Comments
		v1.POST("/comments", commentHandler.Create)

		// Newsletter
		subscribers := v1.Group("/subscribers")
		{
			subscribers.POST("", subscriberHandler.Subscribe)
			subscribers.GET("/confirm", subscriberHandler.Confirm)
		}

		// Admin
		admin := v1.Group("/admin")
		{
			admin.GET("/dashboard", dashboardHandler.GetDashboard)

			content := admin.Group("/content")
			{
				content.POST("", contentHandler.Create)
				content.GET("", contentHandler.ListAll)
				content.GET("/:id", contentHandler.Get)
				content.PATCH("/:id", contentHandler.Update)
				content.DELETE("/:id", contentHandler.Delete)
			}

			comments := admin.Group("/comments")
			{
				comments.GET("/pending", commentHandler.ListPending)
				comments.POST("/:id/approve", commentHandler.Approve)
				comments.DELETE("/:id", commentHandler.Delete)
			}

			adminSubscribers := admin.Group("/subscribers")
			{
				adminSubscribers.GET("/export", subscriberHandler.StreamExport)
				adminSubscribers.DELETE("/:id", subscriberHandler.Delete)
			}
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-platform-api",
	})
}

// siteInfo returns the injected site identity
func siteInfo(site *config.SiteConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":         site.Name,
			"author":       site.Author,
			"description":  site.Description,
			"base_url":     site.BaseURL,
			"social_links": site.SocialLinks,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
