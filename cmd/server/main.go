package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/auth"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/config"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/handlers"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/repository"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Initialize Redis (optional, the redirect path degrades to DB-only)
	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("Failed to connect to Redis, continuing without cache", "error", err)
		rdb = nil
	}

	// 5. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// 6. Initialize Stores & Services
	urlStore := repository.NewURLStore(db)
	userStore := repository.NewUserStore(db)
	verifier := auth.NewTokenVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	shortenerService := services.NewShortenerService(urlStore, logger)
	linkService := services.NewLinkService(urlStore, logger)
	clickService := services.NewClickService(urlStore, logger)
	qrService := services.NewQRService()
	apiLimiter := services.NewIPRateLimiter(5, 10, logger)
	redirectLimiter := services.NewIPRateLimiter(30, 60, logger)

	// 7. Initialize Handler
	h := handlers.NewHandler(cfg, logger, urlStore, userStore, rdb, verifier,
		shortenerService, linkService, clickService, qrService)

	// 8. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(apiLimiter, redirectLimiter)

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background context for the click worker; it outlives in-flight
	// requests so late click writes still land.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go clickService.Start(workerCtx)
	apiLimiter.StartCleanup(10 * time.Minute)
	redirectLimiter.StartCleanup(10 * time.Minute)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	// Give the click worker a moment to drain.
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}
