package domain

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Input limits for chat requests.
const (
	MaxQueryLength        = 2000
	MaxSelectedTextLength = 2000
)

// Validation errors surfaced to the request boundary as bad-request outcomes,
// distinct from provider failures.
var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrQueryTooLong    = errors.New("query exceeds maximum length")
	ErrSelectionTooLong = errors.New("selected text exceeds maximum length")
)

// IsValidation reports whether err is a request validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrSelectionTooLong)
}

// transientMarkers are substrings that identify retryable provider failures.
// Provider SDKs do not share a structured error taxonomy, so classification
// falls back to message content.
var transientMarkers = []string{
	"rate limit",
	"quota",
	"429",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"503",
	"connection refused",
	"connection reset",
	"temporarily",
}

// IsTransient reports whether err looks like a transient provider failure
// worth retrying (rate limit, timeout, transient connectivity). Permanent
// failures such as auth errors or malformed requests return false.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
