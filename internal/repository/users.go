package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStore maintains the local mirror of identities owned by the
// external auth provider.
type UserStore interface {
	// Mirror upserts the local row for an externally authenticated
	// identity and returns it. Email and name follow whatever the
	// provider currently reports.
	Mirror(ctx context.Context, externalID, email, name string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type gormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) Mirror(ctx context.Context, externalID, email, name string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			PublicID:   uuid.NewString(),
			ExternalID: externalID,
			Email:      email,
			Name:       name,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			// A concurrent first request may have created the row.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err == nil {
					return &user, nil
				}
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if user.Email != email || user.Name != name {
		user.Email = email
		user.Name = name
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
	}
	return &user, nil
}

func (s *gormUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &user, nil
}
