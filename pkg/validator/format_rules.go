package validator

import (
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// ValidEmail accepts a bare RFC 5322 address whose domain has at least two
// non-empty labels. Display-name forms ("Ada <ada@example.com>") fail.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			labels := strings.Split(domain, ".")
			if len(labels) < 2 {
				return false
			}
			return !slices.Contains(labels, "")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// ValidURL requires an absolute URL with a scheme and host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(strings.TrimSpace(value))
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: newError(field, "must be a valid URL", "validation.url", nil),
	}
}
