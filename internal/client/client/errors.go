package client

import "errors"

var (
	// ErrUnavailable covers transport-level failures: the server could not
	// be reached or its response could not be parsed.
	ErrUnavailable = errors.New("server unavailable")

	// ErrCodeNotFound means the server answered but does not recognize the
	// code (unknown or already expired).
	ErrCodeNotFound = errors.New("invalid or expired code")

	// ErrRejected wraps an application-level rejection; the server-provided
	// reason is appended to the message.
	ErrRejected = errors.New("rejected by server")

	// ErrLocalDataNotAvailable signals a broken local database.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
