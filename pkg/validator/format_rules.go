package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/dmitrymomot/progenglish/pkg/password"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidEmail validates that a string is a plain email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			local, domain, ok := strings.Cut(value, "@")
			if !ok || local == "" {
				return false
			}
			return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: ValidationError{Field: field, Message: "value is not a valid email address", Type: TypeEmail},
	}
}

func ValidUsername(field, value string, minLen, maxLen int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < minLen || len(value) > maxLen {
				return false
			}
			return usernameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("username must be %d-%d characters long and contain only letters, numbers, underscores, and hyphens", minLen, maxLen),
			Type:    TypePattern,
		},
	}
}

// StrongPassword requires upper case, lower case and a digit in at least 8 characters.
func StrongPassword(field, value string) Rule {
	return Rule{
		Check: func() bool { return password.IsStrong(value) },
		Error: ValidationError{
			Field:   field,
			Message: "password must be at least 8 characters and contain upper case, lower case and a digit",
			Type:    TypeWeak,
		},
	}
}
