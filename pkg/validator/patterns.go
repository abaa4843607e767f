package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	nameRegex   = regexp.MustCompile(`^\p{L}[\p{L}\p{M} .'\-]*$`)
	uuidV4Regex = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

// Pattern is a named string matcher used by the Regex rule.
type Pattern struct {
	name  string
	match func(string) bool
}

func (p Pattern) Name() string { return p.name }

func (p Pattern) Match(s string) bool {
	if p.match == nil {
		return false
	}
	return p.match(s)
}

var (
	// PatternName accepts person and product names: letters, spaces, dots, apostrophes and hyphens.
	PatternName = Pattern{name: "name", match: nameRegex.MatchString}

	// PatternEmail accepts a bare address with a dotted domain.
	PatternEmail = Pattern{name: "email", match: isEmail}

	// PatternPassword requires 8 to 128 characters with at least one letter and one digit.
	PatternPassword = Pattern{name: "password", match: isPassword}

	// PatternUUIDv4 accepts RFC 4122 version 4 UUIDs in canonical form.
	PatternUUIDv4 = Pattern{name: "uuidV4", match: uuidV4Regex.MatchString}

	// PatternURL accepts absolute http and https URLs.
	PatternURL = Pattern{name: "url", match: isURL}
)

// CustomPattern wraps a caller-supplied regular expression.
func CustomPattern(re *regexp.Regexp) Pattern {
	return Pattern{name: "custom", match: re.MatchString}
}

// PatternByName looks a pattern up in the named pattern table.
func PatternByName(name string) (Pattern, error) {
	for _, p := range []Pattern{PatternName, PatternEmail, PatternPassword, PatternUUIDv4, PatternURL} {
		if p.name == name {
			return p, nil
		}
	}
	return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}

	local, domain, found := strings.Cut(value, "@")
	if !found || local == "" {
		return false
	}

	// Domain must contain at least one dot and no empty labels
	if !strings.Contains(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isPassword(value string) bool {
	if len(value) < 8 || len(value) > 128 {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsSpace(r):
			return false
		}
	}
	return hasLetter && hasDigit
}

func isURL(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
