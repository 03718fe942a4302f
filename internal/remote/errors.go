package remote

import "errors"

var (
	// ErrUnavailable indicates a transport failure or exhausted retries;
	// the call can be retried on a later sync pass.
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrUnauthorized indicates the credentials were rejected even after a
	// token refresh.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected indicates the remote store refused the row itself
	// (validation failure); retrying the same payload will not help.
	ErrRejected = errors.New("remote store rejected request")
)
