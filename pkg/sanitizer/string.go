package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
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

// NFC composes combining marks so that visually equal strings compare equal,
// which matters for uniqueness checks on names and emails.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// CollapseWhitespace replaces every run of whitespace with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripControl drops non-printable control characters except plain spaces.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeName prepares a person or product name for storage: control
// characters are dropped, whitespace collapsed and the text composed to NFC.
func NormalizeName(s string) string {
	return Apply(s, StripControl, CollapseWhitespace, NFC)
}

// TitleName is NormalizeName followed by English title casing.
func TitleName(s string) string {
	return cases.Title(language.English, cases.NoLower).String(NormalizeName(s))
}
