package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// NormalizeUnicode converts s to Unicode NFC.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// StripControl removes control characters except tab and newline.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
}

// NormalizeWhitespace collapses runs of whitespace into a single space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SingleLine cleans text meant to fit on one line, such as a vocabulary term.
var SingleLine = Compose(StripControl, NormalizeUnicode, NormalizeWhitespace)

// MultiLine cleans free text, keeping line breaks but trimming every line.
func MultiLine(s string) string {
	s = NormalizeUnicode(StripControl(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = NormalizeWhitespace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
