package handlers

import (
	"net/http"
	"strings"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/services"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// authenticate resolves the bearer token (if any) to a local mirrored
// user id. Returns false when no valid token is present.
func (h *Handler) authenticate(c *gin.Context) (uint, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}

	claims, err := h.verifier.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return 0, false
	}

	user, err := h.users.Mirror(c.Request.Context(), claims.Subject, claims.Email, claims.Name)
	if err != nil {
		h.logger.Error("Failed to mirror external user", "external_id", claims.Subject, "error", err)
		return 0, false
	}
	return user.ID, true
}

// AuthRequired rejects requests without a valid token from the external
// identity provider.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.authenticate(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is
// present and lets anonymous requests through.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := h.authenticate(c); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// currentUserID reads the authenticated caller set by the middleware.
// Nil for anonymous requests.
func currentUserID(c *gin.Context) *uint {
	if val, exists := c.Get(userIDKey); exists {
		uid := val.(uint)
		return &uid
	}
	return nil
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
