package tracker

import "errors"

var (
	// ErrStoreNil is returned when constructing a tracker without a store.
	ErrStoreNil = errors.New("session store is required")
	// ErrMissingUserID is returned when constructing a tracker without an owner.
	ErrMissingUserID = errors.New("user ID is required")
	// ErrSessionNotFound is returned by stores when patching a session that does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionClosed is returned by stores when patching a session that has already been closed.
	ErrSessionClosed = errors.New("session already closed")
)
