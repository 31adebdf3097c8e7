package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/apperrors"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/models"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/internal/repository"
	"github.com/Abhishekjohn1507/Link-Forge-Ai/pkg/utils"

	"github.com/sethvargo/go-retry"
)

const (
	randomCodeLength = 7
	// Random candidates are regenerated on collision at most this many
	// times before giving up with ErrCodeSpaceExhausted.
	maxCodeAttempts = 5
)

type ShortenDTO struct {
	UserID *uint
	RawURL string
	Alias  string
}

type BulkResult struct {
	OriginalURL string `json:"original_url"`
	ShortCode   string `json:"short_code"`
}

type ShortenerService struct {
	store         repository.URLStore
	logger        *slog.Logger
	codeGenerator func(int) string
}

func NewShortenerService(store repository.URLStore, logger *slog.Logger) *ShortenerService {
	return &ShortenerService{
		store:         store,
		logger:        logger,
		codeGenerator: utils.GenerateShortCode,
	}
}

// NormalizeURL parses the input as an absolute URL, retrying with an
// https:// prefix when the bare form has no scheme. Anything that still
// fails to parse is rejected as ErrInvalidURL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil || u.Host == "" {
			return "", apperrors.ErrInvalidURL
		}
	}

	return u.String(), nil
}

// Shorten creates a live record for the URL. An explicit alias is user
// intent: a collision fails with ErrAliasTaken and is never retried.
// Random candidates are an implementation detail and are regenerated
// transparently on collision.
func (s *ShortenerService) Shorten(ctx context.Context, dto ShortenDTO) (*models.URL, error) {
	normalized, err := NormalizeURL(dto.RawURL)
	if err != nil {
		return nil, err
	}

	if dto.Alias != "" {
		if err := utils.ValidateAlias(dto.Alias); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAlias, err)
		}
		record := &models.URL{
			UserID:      dto.UserID,
			ShortCode:   dto.Alias,
			OriginalURL: normalized,
			CreatedAt:   time.Now(),
		}
		if err := s.store.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}

	var record *models.URL
	backoff := retry.WithMaxRetries(maxCodeAttempts-1, retry.NewConstant(time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate := &models.URL{
			UserID:      dto.UserID,
			ShortCode:   s.codeGenerator(randomCodeLength),
			OriginalURL: normalized,
			CreatedAt:   time.Now(),
		}
		if err := s.store.Create(ctx, candidate); err != nil {
			if errors.Is(err, apperrors.ErrAliasTaken) {
				return retry.RetryableError(err)
			}
			return err
		}
		record = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAliasTaken) {
			s.logger.Error("random code space exhausted", "attempts", maxCodeAttempts)
			return nil, apperrors.ErrCodeSpaceExhausted
		}
		return nil, err
	}

	return record, nil
}

// ShortenBulk processes up to MaxBulkURLs inputs independently. Inputs
// that fail validation land in the invalid list; store failures on
// individual URLs are logged and skipped. Partial success is expected.
func (s *ShortenerService) ShortenBulk(ctx context.Context, userID *uint, raws []string) ([]BulkResult, []string) {
	results := make([]BulkResult, 0, len(raws))
	invalid := make([]string, 0)

	for _, raw := range raws {
		record, err := s.Shorten(ctx, ShortenDTO{UserID: userID, RawURL: raw})
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidURL) {
				invalid = append(invalid, raw)
				continue
			}
			s.logger.Error("bulk shorten failed for URL", "url", raw, "error", err)
			continue
		}
		results = append(results, BulkResult{
			OriginalURL: record.OriginalURL,
			ShortCode:   record.ShortCode,
		})
	}

	return results, invalid
}

// MaxBulkURLs is the cap on a single bulk request.
const MaxBulkURLs = 50
