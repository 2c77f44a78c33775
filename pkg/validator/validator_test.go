package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/progenglish/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("username", "alice"),
			validator.ValidEmail("email", "alice@example.com"),
			validator.MinNum("size", 10, 1),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("username", "  "),
			validator.ValidEmail("email", "not-an-email"),
			validator.MaxNum("size", 101, 100),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 3)
		assert.Equal(t, validator.ValidationError{Field: "username", Message: "field required", Type: validator.TypeMissing}, ve[0])
		assert.Equal(t, validator.TypeEmail, ve[1].Type)
		assert.True(t, ve.Has("size"))
		assert.Contains(t, err.Error(), "username: field required")
	})

	t.Run("wrapped errors are detected", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("create: %w", validator.Apply(validator.RequiredString("word", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, validator.IsValidationError(errors.New("plain")))
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	type category string

	tests := []struct {
		name string
		rule validator.Rule
		want bool
	}{
		{"min len counts runes", validator.MinLenString("w", "héllo", 5), true},
		{"min len short", validator.MinLenString("w", "hi", 3), false},
		{"max len ok", validator.MaxLenString("w", "hello", 5), true},
		{"max len long", validator.MaxLenString("w", "hello!", 5), false},
		{"in list", validator.InList("c", category("basic"), []category{"basic", "function"}), true},
		{"not in list", validator.InList("c", category("misc"), []category{"basic", "function"}), false},
		{"username ok", validator.ValidUsername("u", "john_doe-1", 3, 50), true},
		{"username short", validator.ValidUsername("u", "jo", 3, 50), false},
		{"username symbols", validator.ValidUsername("u", "john doe", 3, 50), false},
		{"email display name rejected", validator.ValidEmail("e", "Alice <a@example.com>"), false},
		{"email without tld", validator.ValidEmail("e", "a@example"), false},
		{"strong password", validator.StrongPassword("p", "Secret123"), true},
		{"weak password", validator.StrongPassword("p", "secret"), false},
		{"when skipped", validator.When(false, validator.RequiredString("x", "")), true},
		{"when applied", validator.When(true, validator.RequiredString("x", "")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule.Check())
		})
	}
}
