package handlers

import (
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API. The redirect limiter is separate from the
// general one because redirect traffic dwarfs API traffic.
func (h *Handler) SetupRouter(apiLimiter, redirectLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")
	if apiLimiter != nil {
		api.Use(h.RateLimitMiddleware(apiLimiter))
	}
	{
		api.POST("/shorten", h.OptionalAuth(), h.ShortenURL)
		api.POST("/shorten/bulk", h.OptionalAuth(), h.ShortenBulk)
		api.GET("/qrcode/:short_code", h.QRCode)

		authorized := api.Group("")
		authorized.Use(h.AuthRequired())
		{
			authorized.GET("/links", h.ListLinks)
			authorized.PUT("/links/:short_code", h.UpdateAlias)
			authorized.DELETE("/links/:short_code", h.DeleteLink)
			authorized.GET("/links/:short_code/stats", h.ShowStats)
		}
	}

	// Catch-all redirect
	redirect := r.Group("/")
	if redirectLimiter != nil {
		redirect.Use(h.RateLimitMiddleware(redirectLimiter))
	}
	redirect.GET("/:short_code", h.RedirectToURL)

	return r
}
