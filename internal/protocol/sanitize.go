package protocol

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeBody - prepares a composed text for framing: invalid unicode
// sequences and control characters are dropped, a run of line breaks
// collapses into a single space and any other whitespace becomes a plain
// space. A multi-line compose therefore always joins into one line.
func NormalizeBody(body string) string {
	var b strings.Builder
	b.Grow(len(body))
	var prev rune
	for _, r := range body {
		switch {
		case r == utf8.RuneError:
			// drop
		case r == '\n' || r == '\r':
			if prev != '\n' && prev != '\r' {
				b.WriteByte(' ')
			}
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
			// drop
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.TrimSpace(b.String())
}
