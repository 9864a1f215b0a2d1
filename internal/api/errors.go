package api

import "errors"

var (
	// ErrUnauthorized indicates the backend rejected the bearer token.
	// Callers should route the user to login.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)
