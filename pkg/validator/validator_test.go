package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("email", "ada@example.com"),
			validator.ValidEmail("email", "ada@example.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("failures keep rule order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("email", ""),
			validator.ValidEmail("email", ""),
			validator.MinLen("password", "short", 8),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.True(t, validator.IsValidationError(err))

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{"email", "password"}, verrs.Fields())
		assert.True(t, verrs.Has("password"))
		assert.False(t, verrs.Has("name"))
		assert.Equal(t, []string{"field is required", "must be a valid email address"}, verrs.Get("email"))
		assert.Equal(t, map[string][]string{
			"email":    {"field is required", "must be a valid email address"},
			"password": {"must be at least 8 characters long"},
		}, verrs.Messages())
		assert.Equal(t,
			"validation failed: email: field is required; email: must be a valid email address; password: must be at least 8 characters long",
			err.Error())
	})

	t.Run("wrapped errors are extracted", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("login: %w", validator.Apply(validator.Required("name", " ")))
		assert.True(t, validator.IsValidationError(err))
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
		assert.False(t, validator.IsValidationError(nil))
	})

	t.Run("add", func(t *testing.T) {
		t.Parallel()
		var verrs validator.ValidationErrors
		assert.True(t, verrs.IsEmpty())
		verrs.Add(validator.ValidationError{Field: "x", Message: "bad"})
		assert.False(t, verrs.IsEmpty())
		assert.Equal(t, []string{"bad"}, verrs.Get("x"))
	})
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		want bool
	}{
		{"required passes", validator.Required("name", "Ada"), true},
		{"required fails on whitespace", validator.Required("name", "  \t"), false},
		{"min len at limit", validator.MinLen("pw", "12345678", 8), true},
		{"min len below", validator.MinLen("pw", "1234567", 8), false},
		{"min len counts runes", validator.MinLen("name", "żółw", 4), true},
		{"max len at limit", validator.MaxLen("name", "abc", 3), true},
		{"max len above", validator.MaxLen("name", "abcd", 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule.Check())
		})
	}

	rule := validator.MinLen("password", "", 8)
	assert.Equal(t, "password", rule.Error.Field)
	assert.Equal(t, "validation.min_length", rule.Error.Key)
	assert.Equal(t, map[string]any{"field": "password", "min": 8}, rule.Error.Params)
}

func TestFormatRules(t *testing.T) {
	t.Parallel()

	emails := map[string]bool{
		"ada@example.com":           true,
		"ada.lovelace+x@mail.co.uk": true,
		"":                          false,
		"nope":                      false,
		"ada@localhost":             false,
		"ada@example..com":          false,
		"@example.com":              false,
		"Ada <ada@example.com>":     false,
	}
	for email, want := range emails {
		assert.Equal(t, want, validator.ValidEmail("email", email).Check(), email)
	}

	urls := map[string]bool{
		"https://example.com/x": true,
		"/relative":             false,
		"example.com":           false,
		"":                      false,
	}
	for u, want := range urls {
		assert.Equal(t, want, validator.ValidURL("site", u).Check(), u)
	}
}

func TestPasswordRules(t *testing.T) {
	t.Parallel()

	cfg := validator.DefaultPasswordStrength()
	tests := []struct {
		password string
		want     bool
	}{
		{"Correct-horse1", true},
		{"correct-horse", false},
		{"Sh0rt!", false},
		{"alllowercaseletters", false},
		{"MixedCase123", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validator.StrongPassword("password", tt.password, cfg).Check(), tt.password)
	}

	strict := cfg
	strict.RequireSpecial = true
	assert.False(t, validator.StrongPassword("password", "MixedCase123", strict).Check())
	assert.True(t, validator.StrongPassword("password", "MixedCase123!", strict).Check())

	assert.False(t, validator.NotCommonPassword("password", "Password123").Check())
	assert.True(t, validator.NotCommonPassword("password", "correct-horse").Check())
	assert.Equal(t, "validation.password_common", validator.NotCommonPassword("password", "").Error.Key)
}
