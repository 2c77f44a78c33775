// Package sanitizer holds small string clean-up helpers applied to user
// input before it is validated and stored.
//
// Helpers are plain func(string) string values and combine with Compose:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)
//	clean("  Loop ") // "loop"
//
// SingleLine and MultiLine normalize text to Unicode NFC so the same word
// typed on different keyboards stores and compares identically.
package sanitizer
