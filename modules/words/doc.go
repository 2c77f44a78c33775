// Package words exposes the vocabulary over HTTP under /api/v1/words,
// plus the legacy sample endpoints under /api.
package words
