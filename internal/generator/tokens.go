package generator

import (
	"regexp"
)

var typeTokenPattern = regexp.MustCompile(`\b[A-Z][A-Za-z0-9_]*\b`)

// ScanTypeTokens returns the capitalized identifier tokens found in a type's
// literal or rendered text, deduplicated in order of first appearance.
//
// This is a purely textual heuristic, not a semantic type analyzer. It never
// inspects generic parameter structure, union/intersection composition, or
// literal types: a field typed `Wrapper<Foo>` yields both `Wrapper` and
// `Foo`, so an extractable `Foo` is pulled in as a reference even when the
// outer wrapper is opaque. That false-positive source is deliberate and
// covered by tests.
//
// The pattern admits single-letter tokens (a bare `T` type parameter), a
// superset of the two-character minimum reference detection requires. Such
// tokens only matter when a declaration with that exact name exists; unknown
// ones are discarded by the caller.
func ScanTypeTokens(typeText string) []string {
	matches := typeTokenPattern.FindAllString(typeText, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, match := range matches {
		if seen[match] {
			continue
		}
		seen[match] = true
		tokens = append(tokens, match)
	}
	return tokens
}
