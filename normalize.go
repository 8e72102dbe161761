package adlead

import (
	"regexp"
	"strings"
)

// tagRe matches one markup tag, including attributes and self-closing
// forms. The character class keeps matching linear, so malformed or
// unterminated markup cannot cause backtracking blowups; an unterminated
// "<" simply never matches and survives as text.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// spaceRe matches any run of whitespace, including tabs and newlines.
var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeText strips markup tags from raw page content and collapses
// every whitespace run into a single space. It is total and idempotent:
// it never fails, and empty input yields empty output.
func NormalizeText(raw string) string {
	text := tagRe.ReplaceAllString(raw, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
