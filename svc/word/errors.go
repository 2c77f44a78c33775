package word

import (
	"errors"

	"github.com/dmitrymomot/progenglish/pkg/apperr"
)

// ErrNotFound is returned by storage when no row matches.
var ErrNotFound = errors.New("word not found")

// Failures returned to API callers.
var (
	ErrWordNotFound  = apperr.NotFound("word not found")
	ErrNoWords       = apperr.NotFound("no words available")
	ErrDuplicateWord = apperr.Domain("word already exists")
)
