package geo

import (
	"errors"
	"fmt"
)

// Common errors returned by the geocoding client.
var (
	// ErrNoMatch indicates the geocoder found nothing for the query.
	ErrNoMatch = errors.New("no geocode match")

	// ErrRateLimited indicates the service rejected us for sending too fast.
	ErrRateLimited = errors.New("geocoder rate limit exceeded")

	// ErrNetwork indicates a network connectivity issue.
	ErrNetwork = errors.New("network error communicating with geocoder")

	// ErrInvalidResponse indicates an unexpected response body.
	ErrInvalidResponse = errors.New("invalid response from geocoder")
)

// APIError represents an HTTP error status from the geocoder.
type APIError struct {
	StatusCode int
	Message    string
	Query      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geocoder error (status %d): %s (query: %s)", e.StatusCode, e.Message, e.Query)
}

// IsNoMatch returns true if the geocoder answered and found nothing. HTTP
// error statuses, 404 included, say nothing about the location.
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
