package handlers

import (
	"net/http"
	"strconv"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// QRCode renders a QR code for an existing short link. PNG by default,
// SVG with ?format=svg.
func (h *Handler) QRCode(c *gin.Context) {
	shortCode := c.Param("short_code")

	record, err := h.store.GetByShortCode(c.Request.Context(), shortCode)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	content := h.baseURL(c) + "/" + record.ShortCode

	if c.Query("format") == "svg" {
		svg, err := h.qr.SVG(content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.qr.PNG(content, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
