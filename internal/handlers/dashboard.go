package handlers

import (
	"net/http"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ListLinks returns the caller's own records, newest first. The owner
// filter is applied server-side from the verified identity, never from
// client input.
func (h *Handler) ListLinks(c *gin.Context) {
	userID := c.MustGet(userIDKey).(uint)

	urls, err := h.links.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	base := h.baseURL(c)
	items := make([]gin.H, 0, len(urls))
	for _, u := range urls {
		items = append(items, gin.H{
			"short_code":      u.ShortCode,
			"short_url":       base + "/" + u.ShortCode,
			"original_url":    u.OriginalURL,
			"clicks":          u.ClicksCount,
			"last_clicked_at": u.LastClickedAt,
			"created_at":      u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"links": items, "total": len(items)})
}

type UpdateAliasRequest struct {
	Alias string `json:"alias" binding:"required"`
}

func (h *Handler) UpdateAlias(c *gin.Context) {
	userID := c.MustGet(userIDKey).(uint)
	shortCode := c.Param("short_code")

	var req UpdateAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.links.UpdateAlias(c.Request.Context(), shortCode, userID, req.Alias)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.invalidateCache(c, shortCode, record.ShortCode)

	c.JSON(http.StatusOK, gin.H{
		"message":    "alias updated",
		"short_code": record.ShortCode,
		"short_url":  h.baseURL(c) + "/" + record.ShortCode,
	})
}

func (h *Handler) DeleteLink(c *gin.Context) {
	userID := c.MustGet(userIDKey).(uint)
	shortCode := c.Param("short_code")

	record, err := h.links.DeleteOwned(c.Request.Context(), shortCode, userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.invalidateCache(c, record.ShortCode)

	c.JSON(http.StatusOK, gin.H{"message": "link deleted", "short_code": record.ShortCode})
}
