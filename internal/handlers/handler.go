package handlers

import (
	"log/slog"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/auth"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/config"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/repository"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	store     repository.URLStore
	users     repository.UserStore
	rdb       *redis.Client
	verifier  *auth.TokenVerifier
	shortener *services.ShortenerService
	links     *services.LinkService
	clicks    *services.ClickService
	qr        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	store repository.URLStore,
	users repository.UserStore,
	rdb *redis.Client,
	verifier *auth.TokenVerifier,
	shortener *services.ShortenerService,
	links *services.LinkService,
	clicks *services.ClickService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		users:     users,
		rdb:       rdb,
		verifier:  verifier,
		shortener: shortener,
		links:     links,
		clicks:    clicks,
		qr:        qr,
	}
}

// baseURL is the prefix for short links in responses. Falls back to the
// request host when BASE_URL is not configured.
func (h *Handler) baseURL(c *gin.Context) string {
	if h.cfg.BaseURL != "" {
		return h.cfg.BaseURL
	}
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + c.Request.Host
}
