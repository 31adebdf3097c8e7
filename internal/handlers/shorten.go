package handlers

import (
	"net/http"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	URL   string `json:"url" binding:"required"`
	Alias string `json:"alias,omitempty"`
}

type BulkShortenRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

// ShortenURL handles single URL creation. Anonymous callers are allowed;
// an authenticated caller becomes the record's owner.
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.shortener.Shorten(c.Request.Context(), services.ShortenDTO{
		UserID: currentUserID(c),
		RawURL: req.URL,
		Alias:  req.Alias,
	})
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"short_code":   record.ShortCode,
		"short_url":    h.baseURL(c) + "/" + record.ShortCode,
		"original_url": record.OriginalURL,
	})
}

// ShortenBulk processes up to 50 URLs in one call. Partial success is
// the expected shape: valid inputs succeed independently of the rest.
func (h *Handler) ShortenBulk(c *gin.Context) {
	var req BulkShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls must not be empty"})
		return
	}
	if len(req.URLs) > services.MaxBulkURLs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maximum 50 URLs can be shortened at once"})
		return
	}

	results, invalid := h.shortener.ShortenBulk(c.Request.Context(), currentUserID(c), req.URLs)

	base := h.baseURL(c)
	items := make([]gin.H, 0, len(results))
	for _, res := range results {
		items = append(items, gin.H{
			"original_url": res.OriginalURL,
			"short_code":   res.ShortCode,
			"short_url":    base + "/" + res.ShortCode,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"results":         items,
		"invalid_urls":    invalid,
		"total_processed": len(items),
		"total_invalid":   len(invalid),
	})
}
