package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "123456": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "qwerty": {},
	"qwerty123": {}, "qwertyuiop": {}, "abc123": {}, "letmein": {},
	"welcome": {}, "admin": {}, "admin123": {}, "iloveyou": {},
	"monkey": {}, "dragon": {}, "sunshine": {}, "football": {},
	"baseball": {}, "trustno1": {}, "master": {}, "secret": {},
	"111111": {}, "000000": {}, "asdfghjkl": {}, "zxcvbnm": {},
}

// PasswordStrength configures StrongPassword.
type PasswordStrength struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
	// MinCharClasses is how many of the four classes must appear.
	MinCharClasses int
}

// DefaultPasswordStrength: 8-128 characters, any three character classes.
func DefaultPasswordStrength() PasswordStrength {
	return PasswordStrength{MinLength: 8, MaxLength: 128, MinCharClasses: 3}
}

type charClasses struct {
	upper, lower, digit, special bool
}

func classify(s string) charClasses {
	var c charClasses
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			c.special = true
		}
	}
	return c
}

func (c charClasses) count() int {
	n := 0
	for _, ok := range []bool{c.upper, c.lower, c.digit, c.special} {
		if ok {
			n++
		}
	}
	return n
}

func StrongPassword(field, value string, cfg PasswordStrength) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			if n < cfg.MinLength || (cfg.MaxLength > 0 && n > cfg.MaxLength) {
				return false
			}
			c := classify(value)
			switch {
			case cfg.RequireUppercase && !c.upper,
				cfg.RequireLowercase && !c.lower,
				cfg.RequireDigits && !c.digit,
				cfg.RequireSpecial && !c.special:
				return false
			}
			return c.count() >= cfg.MinCharClasses
		},
		Error: newError(field,
			fmt.Sprintf("must be %d-%d characters and mix at least %d character types", cfg.MinLength, cfg.MaxLength, cfg.MinCharClasses),
			"validation.password_strength", map[string]any{
				"min_length":       cfg.MinLength,
				"max_length":       cfg.MaxLength,
				"min_char_classes": cfg.MinCharClasses,
			}),
	}
}

// NotCommonPassword rejects well-known passwords, case-insensitively.
func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, common := commonPasswords[strings.ToLower(value)]
			return !common
		},
		Error: newError(field, "password is too common", "validation.password_common", nil),
	}
}
