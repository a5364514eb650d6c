// Package htmlsanitize strips dangerous markup from user-supplied text
// before it is stored. Display names and similar fields are plain text, so
// the strict policy removes every tag; Sanitize keeps a UGC policy for
// fields that may legitimately carry formatting.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize removes unsafe HTML (scripts, event handlers, javascript: URLs)
// while keeping common formatting tags.
func Sanitize(s string) string {
	return ugcPolicy.Sanitize(s)
}

// PlainText strips all markup and trims the result. Use for fields that
// must never contain HTML, like display names.
func PlainText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
