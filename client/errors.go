package client

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusConnError is the sentinel status assigned when no response was
// received at all. It never triggers reauthentication.
const StatusConnError = 0

// Common pipeline errors.
var (
	// ErrNoRefreshToken indicates a 401 arrived while the session held no
	// refresh token, so recovery was impossible.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrRefreshFailed indicates the refresh call itself failed.
	ErrRefreshFailed = errors.New("token refresh failed")
)

// APIError is a structured error carrying the backend's numeric status code
// and, when available, the server-provided message and raw body.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == StatusConnError {
		if e.Message != "" {
			return fmt.Sprintf("connection error: %s", e.Message)
		}
		return "connection error"
	}
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// StatusOf extracts the status code from err, or -1 when err carries none.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return -1
}

// IsUnauthorized returns true if err is or wraps a 401 APIError.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsConnError returns true if err represents a transport-level failure where
// no response was received.
func IsConnError(err error) bool {
	return StatusOf(err) == StatusConnError
}
