package session

import "errors"

var (
	// ErrInvalidSession indicates a malformed session record.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrStore wraps failures of the underlying store.
	ErrStore = errors.New("session.store_failed")

	// ErrCodec indicates a session could not be encoded or decoded.
	ErrCodec = errors.New("session.codec_failed")
)
