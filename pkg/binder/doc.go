// Package binder decodes HTTP requests into typed request structs.
//
// JSON reads the body, Path reads router parameters through an extractor
// (chi.URLParam in this service) and Query reads the URL query string. Struct
// fields opt in with `json`, `path` and `query` tags.
//
// Decoding problems are reported as validator.ValidationErrors joined with a
// package sentinel, so callers can both match the sentinel with errors.Is and
// render per field details.
package binder
