package transport

import "errors"

var (
	// ErrSessionExpired is returned when no valid credential can be obtained; the
	// store has been cleared and observers notified by the time callers see it.
	ErrSessionExpired = errors.New("session expired, please login again")

	// ErrUnauthorizedAfterRefresh is returned when a request replayed with a
	// freshly refreshed token is rejected again. It is never retried.
	ErrUnauthorizedAfterRefresh = errors.New("request unauthorized after token refresh")
)
