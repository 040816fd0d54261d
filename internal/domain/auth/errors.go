package auth

import "errors"

var (
	// ErrNotFound indicates the credential record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable indicates the credential store could not be
	// reached, as opposed to the user not existing.
	ErrStoreUnavailable = errors.New("store unavailable")
)
