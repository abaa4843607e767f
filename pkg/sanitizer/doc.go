// Package sanitizer cleans user input before it is validated.
//
// Request bodies arrive as decoded JSON (map[string]any). Model produces a
// deep copy with every string trimmed and optional per-field transforms
// applied, leaving types untouched so the validator still sees and reports
// wrongly typed input:
//
//	model := sanitizer.Model(body, sanitizer.Fields{
//	    "email": sanitizer.NormalizeEmail,
//	    "name":  sanitizer.NormalizeName,
//	})
//
// The string helpers are small and can be chained with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.CollapseWhitespace,
//	    sanitizer.ToLower,
//	)
//
//	safe := clean("  Mixed CASE   Input\n") // "mixed case input"
//
// Names are composed to Unicode NFC with golang.org/x/text so that "é" typed
// as one code point and as "e" plus a combining accent are stored the same way.
//
// None of the helpers returns an error. They fall back to the original input
// when it cannot be normalised.
package sanitizer
