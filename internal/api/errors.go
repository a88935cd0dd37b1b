package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds callers branch on. Anything else is
// a generic network-or-server failure and arrives wrapped.
var (
	// ErrInvalidCredentials: the server rejected the login. Surfaced inline
	// by the login screen; never written to the session store.
	ErrInvalidCredentials = errors.New("api: invalid credentials")

	// ErrUnauthorized: the bearer token was missing, stale or revoked.
	// The client discovers token staleness only this way.
	ErrUnauthorized = errors.New("api: unauthorized")

	// ErrNotFound: the addressed record does not exist (e.g. deleted by
	// someone else since the last list).
	ErrNotFound = errors.New("api: not found")
)

// APIError carries a non-2xx status that maps to no sentinel.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Body)
}
