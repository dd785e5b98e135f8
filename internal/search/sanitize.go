// Package search implements the free-text matching shared by the list
// screens: normalize both sides, then test substring containment over a
// fixed set of searchable fields per entity.
package search

import "strings"

var punctReplacer = strings.NewReplacer("*", "", "_", "", "`", "", "~", "")

// Sanitize strips markdown-style punctuation, trims surrounding space
// and lowercases. Applied to the query and every candidate field.
func Sanitize(text string) string {
	return strings.ToLower(strings.TrimSpace(punctReplacer.Replace(text)))
}

// Matches reports whether any of the candidate fields contains the
// already-sanitized query as a substring.
func Matches(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(Sanitize(field), query) {
			return true
		}
	}
	return false
}
