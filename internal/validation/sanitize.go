// Package validation cleans and checks the fields of a content request before
// it is sent to the generator.
package validation

import (
	"strings"
	"unicode"
)

var lineEndings = strings.NewReplacer("\x00", "", "\r\n", "\n", "\r", "\n")

// Sanitize trims text, removes null bytes and other non-whitespace control
// characters, normalises line endings and collapses every whitespace run
// (newlines included) into a single space. It never fails and is idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = lineEndings.Replace(text)

	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if isSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSpace also counts the file, group, record and unit separators
// (U+001C to U+001F) as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
