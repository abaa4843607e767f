package validator_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestLength(t *testing.T) {
	t.Parallel()

	rule := validator.Length(2, 4)

	tests := []struct {
		name  string
		value any
		pass  bool
	}{
		{"string at min", "ab", true},
		{"string at max", "abcd", true},
		{"string too short", "a", false},
		{"string too long", "abcde", false},
		{"multibyte counted in runes", "äöü", true},
		{"array inside bounds", []any{1, 2, 3}, true},
		{"array too short", []any{1}, false},
		{"typed slice too long", []string{"a", "b", "c", "d", "e"}, false},
		{"number ignored", 123456, true},
		{"map ignored", map[string]any{"a": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := check(t, rule, "v", validator.Model{"v": tt.value}, nil)
			if tt.pass {
				assert.Nil(t, fail)
				return
			}
			require.NotNil(t, fail)
			assert.Equal(t, validator.KindLength, fail.Rule)
			assert.Equal(t, 2, fail.Details["min"])
			assert.Equal(t, 4, fail.Details["max"])
		})
	}
}

func TestRegex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern validator.Pattern
		value   any
		pass    bool
	}{
		{"email valid", validator.PatternEmail, "user@example.com", true},
		{"email with display name", validator.PatternEmail, "User <user@example.com>", false},
		{"email without dotted domain", validator.PatternEmail, "user@localhost", false},
		{"email empty label", validator.PatternEmail, "user@example..com", false},
		{"email not a string", validator.PatternEmail, 42, false},
		{"name valid", validator.PatternName, "Anne-Marie O'Neil", true},
		{"name unicode", validator.PatternName, "Zoë Ünal", true},
		{"name digits", validator.PatternName, "R2D2", false},
		{"name leading space", validator.PatternName, " Anne", false},
		{"password valid", validator.PatternPassword, "secret123", true},
		{"password no digit", validator.PatternPassword, "secretsecret", false},
		{"password too short", validator.PatternPassword, "abc123", false},
		{"password whitespace", validator.PatternPassword, "secret 123", false},
		{"uuid v4", validator.PatternUUIDv4, "00000000-0000-4000-8000-000000000002", true},
		{"uuid v4 upper case", validator.PatternUUIDv4, "3F2504E0-4F89-41D3-9A0C-0305E82C3301", true},
		{"uuid v1 rejected", validator.PatternUUIDv4, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", false},
		{"url https", validator.PatternURL, "https://example.com/path?q=1", true},
		{"url ftp rejected", validator.PatternURL, "ftp://example.com", false},
		{"url relative rejected", validator.PatternURL, "/path", false},
		{"custom pattern", validator.CustomPattern(regexp.MustCompile(`^[A-Z]{3}$`)), "EUR", true},
		{"custom pattern mismatch", validator.CustomPattern(regexp.MustCompile(`^[A-Z]{3}$`)), "euro", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := check(t, validator.Regex(tt.pattern), "v", validator.Model{"v": tt.value}, nil)
			if tt.pass {
				assert.Nil(t, fail)
				return
			}
			require.NotNil(t, fail)
			assert.Equal(t, validator.KindRegex, fail.Rule)
			assert.Equal(t, tt.pattern.Name(), fail.Details["pattern"])
		})
	}
}

func TestPatternByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"name", "email", "password", "uuidV4", "url"} {
		p, err := validator.PatternByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := validator.PatternByName("phone")
	assert.ErrorIs(t, err, validator.ErrUnknownPattern)
}
