package services

import (
	"context"
	"log/slog"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/repository"

	"github.com/mssola/user_agent"
)

// ClickService records clicks off the redirect path. Recording is
// fire-and-forget: the redirect never waits on it, failures are logged
// and dropped, and a full channel drops the event rather than blocking.
type ClickService struct {
	store        repository.URLStore
	logger       *slog.Logger
	clickChannel chan models.Click
}

func NewClickService(store repository.URLStore, logger *slog.Logger) *ClickService {
	return &ClickService{
		store:        store,
		logger:       logger,
		clickChannel: make(chan models.Click, 1000),
	}
}

func (s *ClickService) Start(ctx context.Context) {
	s.logger.Info("Click worker starting")
	for {
		select {
		case click := <-s.clickChannel:
			// A write that outlives the originating request is still
			// valid, so the worker does not inherit request contexts.
			s.record(context.Background(), click)
		case <-ctx.Done():
			s.logger.Info("Click worker stopping")
			return
		}
	}
}

func (s *ClickService) RecordAsync(click models.Click) {
	select {
	case s.clickChannel <- click:
		// Sent
	default:
		s.logger.Warn("Click channel full, dropping click event", "url_id", click.URLID)
	}
}

func (s *ClickService) record(ctx context.Context, click models.Click) {
	recorded, err := s.store.RecordClick(ctx, click.URLID, click.Timestamp)
	if err != nil {
		s.logger.Error("Failed to increment click counter", "url_id", click.URLID, "error", err)
		return
	}
	if !recorded {
		// Record deleted between redirect and recording. Not an error.
		return
	}

	s.enrich(&click)
	if err := s.store.InsertClick(ctx, &click); err != nil {
		s.logger.Error("Failed to record click event", "url_id", click.URLID, "error", err)
	}
}

func (s *ClickService) enrich(click *models.Click) {
	ua := user_agent.New(click.Platform)
	browserName, browserVer := ua.Browser()
	click.Browser = browserName + " " + browserVer
	click.OS = ua.OS()

	if ua.Mobile() {
		click.DeviceType = "Mobile"
	} else if ua.Bot() {
		click.DeviceType = "Bot"
	} else {
		click.DeviceType = "Desktop"
	}

	if click.Referrer == "" {
		click.Referrer = "Direct"
	}
}
