package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	cacheKeyPrefix = "url:"
	cacheTTL       = 10 * time.Minute
)

// RedirectToURL resolves a short code and issues the redirect. An
// unknown code navigates to the home page: not-found is an expected
// outcome here, not an error. Click recording is dispatched without
// being awaited.
func (h *Handler) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("short_code")
	ctx := c.Request.Context()

	var urlEntry models.URL
	cacheHit := false
	if h.rdb != nil {
		val, err := h.rdb.Get(ctx, cacheKeyPrefix+shortCode).Result()
		if err == nil {
			if err := json.Unmarshal([]byte(val), &urlEntry); err == nil {
				cacheHit = true
			}
		}
	}

	if !cacheHit {
		record, err := h.store.GetByShortCode(ctx, shortCode)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				// Lookup failures fall back to the safe default
				// destination rather than a technical error page.
				h.logger.Error("Redirect lookup failed", "short_code", shortCode, "error", err)
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
		urlEntry = *record

		if h.rdb != nil {
			if data, err := json.Marshal(urlEntry); err == nil {
				h.rdb.Set(ctx, cacheKeyPrefix+shortCode, data, cacheTTL)
			}
		}
	}

	h.clicks.RecordAsync(models.Click{
		URLID:     urlEntry.ID,
		Timestamp: time.Now(),
		Platform:  c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})

	c.Redirect(http.StatusFound, urlEntry.OriginalURL)
}

// invalidateCache drops the redirect-path cache entries for the given
// short codes after a rename or delete.
func (h *Handler) invalidateCache(c *gin.Context, shortCodes ...string) {
	if h.rdb == nil {
		return
	}
	keys := make([]string, len(shortCodes))
	for i, code := range shortCodes {
		keys[i] = cacheKeyPrefix + code
	}
	if err := h.rdb.Del(c.Request.Context(), keys...).Err(); err != nil {
		h.logger.Warn("Failed to invalidate redirect cache", "keys", keys, "error", err)
	}
}
