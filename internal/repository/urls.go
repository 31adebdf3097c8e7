package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"

	"gorm.io/gorm"
)

// URLStore is the record store behind the shortener. Short-code
// uniqueness is a hard constraint here: Create and RenameShortCode rely
// on the unique index, so two concurrent writes with the same code can
// never both succeed.
type URLStore interface {
	Create(ctx context.Context, url *models.URL) error
	GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.URL, error)
	RenameShortCode(ctx context.Context, id uint, newCode string) error
	RecordClick(ctx context.Context, id uint, at time.Time) (bool, error)
	InsertClick(ctx context.Context, click *models.Click) error
	RecentClicks(ctx context.Context, urlID uint, limit int) ([]models.Click, error)
	Delete(ctx context.Context, id uint) error
}

type gormURLStore struct {
	db *gorm.DB
}

func NewURLStore(db *gorm.DB) URLStore {
	return &gormURLStore{db: db}
}

func (s *gormURLStore) Create(ctx context.Context, url *models.URL) error {
	if err := s.db.WithContext(ctx).Create(url).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAliasTaken
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *gormURLStore) GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	var url models.URL
	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &url, nil
}

func (s *gormURLStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.URL, error) {
	var urls []models.URL
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc, id desc").
		Find(&urls).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return urls, nil
}

func (s *gormURLStore) RenameShortCode(ctx context.Context, id uint, newCode string) error {
	res := s.db.WithContext(ctx).Model(&models.URL{}).
		Where("id = ?", id).
		Update("short_code", newCode)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAliasTaken
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordClick bumps the denormalized counter and last-clicked timestamp
// in a single statement, so concurrent visits never lose increments.
// Returns false when the record no longer exists.
func (s *gormURLStore) RecordClick(ctx context.Context, id uint, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.URL{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"clicks":          gorm.Expr("clicks + 1"),
			"last_clicked_at": at,
		})
	if res.Error != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *gormURLStore) InsertClick(ctx context.Context, click *models.Click) error {
	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *gormURLStore) RecentClicks(ctx context.Context, urlID uint, limit int) ([]models.Click, error) {
	var clicks []models.Click
	err := s.db.WithContext(ctx).
		Where("url_id = ?", urlID).
		Order("timestamp desc").
		Limit(limit).
		Find(&clicks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return clicks, nil
}

// Delete removes the record and its click history in one transaction.
// Deleting an id that is already gone is a no-op.
func (s *gormURLStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("url_id = ?", id).Delete(&models.Click{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.URL{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
