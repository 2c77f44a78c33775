package user

import "errors"

var (
	// ErrNotFound is returned by lookups that match no account.
	ErrNotFound = errors.New("user not found")
	// ErrBootstrapFailed wraps failures while creating the startup superuser.
	ErrBootstrapFailed = errors.New("superuser bootstrap failed")
)
