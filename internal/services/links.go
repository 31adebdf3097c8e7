package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/repository"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/pkg/utils"
)

const statsHistoryLimit = 50

// LinkService is the dashboard query layer: owner-scoped listing plus
// the mutating operations, all gated by a single ownership check.
type LinkService struct {
	store  repository.URLStore
	logger *slog.Logger
}

func NewLinkService(store repository.URLStore, logger *slog.Logger) *LinkService {
	return &LinkService{store: store, logger: logger}
}

// authorize is the only ownership check in the system. Anonymous records
// have no owner and are denied to every caller.
func authorize(record *models.URL, callerID uint) bool {
	return record.UserID != nil && *record.UserID == callerID
}

func (s *LinkService) ListForOwner(ctx context.Context, ownerID uint) ([]models.URL, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// UpdateAlias renames a short code. The old code stops resolving as soon
// as this returns; the caller is responsible for cache invalidation.
func (s *LinkService) UpdateAlias(ctx context.Context, shortCode string, callerID uint, newAlias string) (*models.URL, error) {
	record, err := s.store.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if !authorize(record, callerID) {
		return nil, apperrors.ErrAccessDenied
	}

	if err := utils.ValidateAlias(newAlias); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAlias, err)
	}

	if newAlias == record.ShortCode {
		return record, nil
	}

	if err := s.store.RenameShortCode(ctx, record.ID, newAlias); err != nil {
		return nil, err
	}

	record.ShortCode = newAlias
	return record, nil
}

// DeleteOwned removes a record and its click history. Returns the
// deleted record so the caller can invalidate caches.
func (s *LinkService) DeleteOwned(ctx context.Context, shortCode string, callerID uint) (*models.URL, error) {
	record, err := s.store.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if !authorize(record, callerID) {
		return nil, apperrors.ErrAccessDenied
	}

	if err := s.store.Delete(ctx, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

// Stats returns the record plus its recent click history, owner-scoped.
func (s *LinkService) Stats(ctx context.Context, shortCode string, callerID uint) (*models.URL, []models.Click, error) {
	record, err := s.store.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, nil, err
	}
	if !authorize(record, callerID) {
		return nil, nil, apperrors.ErrAccessDenied
	}

	history, err := s.store.RecentClicks(ctx, record.ID, statsHistoryLimit)
	if err != nil {
		return nil, nil, err
	}
	return record, history, nil
}
