// Package emoji rewrites :name: shortcodes in chat text into display
// glyphs. The table is populated once at startup from the gemoji code
// map and is read-only afterwards.
package emoji

import (
	"strings"
	"unicode"

	gemoji "github.com/kyokomi/emoji/v2"
)

// table maps a bare shortcode (without colons) to its glyph.
// Never mutated after init.
var table = func() map[string]string {
	m := make(map[string]string)
	for code, glyph := range gemoji.CodeMap() {
		m[strings.Trim(code, ":")] = glyph
	}
	return m
}()

// Lookup - resolves a bare shortcode to its glyph.
func Lookup(name string) (string, bool) {
	glyph, ok := table[name]
	return glyph, ok
}

// Replace - rewrites every :name: occurrence in text to the matching
// glyph. A candidate name is the shortest run of non-colon, non-space
// characters between two colons; whitespace aborts a candidate and an
// unknown name is emitted verbatim, colons included.
func Replace(text string) string {
	var out strings.Builder
	out.Grow(len(text))
	var name strings.Builder
	inCandidate := false

	flush := func() {
		out.WriteByte(':')
		out.WriteString(name.String())
		name.Reset()
		inCandidate = false
	}

	for _, r := range text {
		switch {
		case r == ':':
			if !inCandidate {
				inCandidate = true
				continue
			}
			if glyph, ok := Lookup(name.String()); ok {
				out.WriteString(glyph)
				name.Reset()
				inCandidate = false
				continue
			}
			// unknown name: emit verbatim and let the closing colon
			// open the next candidate
			flush()
			inCandidate = true
		case inCandidate && unicode.IsSpace(r):
			flush()
			out.WriteRune(r)
		case inCandidate:
			name.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	if inCandidate {
		flush()
	}
	return out.String()
}
