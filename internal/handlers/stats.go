package handlers

import (
	"net/http"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ShowStats returns click totals and recent click history for one of
// the caller's own links.
func (h *Handler) ShowStats(c *gin.Context) {
	userID := c.MustGet(userIDKey).(uint)
	shortCode := c.Param("short_code")

	record, history, err := h.links.Stats(c.Request.Context(), shortCode, userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	events := make([]gin.H, 0, len(history))
	for _, click := range history {
		events = append(events, gin.H{
			"clicked_at":  click.Timestamp,
			"browser":     click.Browser,
			"os":          click.OS,
			"device_type": click.DeviceType,
			"referrer":    click.Referrer,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"short_code":      record.ShortCode,
		"original_url":    record.OriginalURL,
		"clicks":          record.ClicksCount,
		"last_clicked_at": record.LastClickedAt,
		"created_at":      record.CreatedAt,
		"history":         events,
	})
}
