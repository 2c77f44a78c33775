package auth

import "github.com/dmitrymomot/progenglish/pkg/apperr"

var (
	// ErrInvalidCredentials covers unknown identifiers and wrong passwords alike.
	ErrInvalidCredentials = apperr.Authentication("username or password incorrect")
	// ErrAccountDisabled is returned only after the password was verified.
	ErrAccountDisabled = apperr.Authentication("account is disabled")
	// ErrUnauthenticated rejects requests without a usable access token.
	ErrUnauthenticated = apperr.Authentication("could not validate credentials")
)
