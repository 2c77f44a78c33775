package validator

import (
	"fmt"
	"slices"
	"strings"
)

// InList validates that value is one of allowed.
func InList[T ~string](field string, value T, allowed []T) Rule {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(names, ", ")),
			Type:    TypeEnum,
		},
	}
}
