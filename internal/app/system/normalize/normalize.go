// Package normalize provides canonicalization helpers for user-supplied
// values. Every value that reaches a store or a query filter goes through
// one of these first so comparisons stay consistent.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace from a display name. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Capability trims and lowercases a capability name.
func Capability(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
