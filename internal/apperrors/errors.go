package apperrors

import (
	"errors"
	"net/http"
)

// Request-level error taxonomy. Services wrap these with %w so handlers
// can translate them to HTTP statuses without string matching.
var (
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidAlias       = errors.New("invalid alias")
	ErrAliasTaken         = errors.New("alias already in use")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique short code")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// HTTPStatus maps a service error to its response status. Unknown errors
// are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrInvalidAlias):
		return http.StatusBadRequest
	case errors.Is(err, ErrAliasTaken):
		return http.StatusConflict
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
