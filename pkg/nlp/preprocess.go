package nlp

import (
	"strings"
	"unicode"
)

// Preprocess normalizes a raw utterance before interpretation: strips every
// rune that is not a word character or whitespace, collapses the remainder to
// lowercase and trims it. Always returns a string, possibly empty.
func Preprocess(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(strings.ToLower(b.String()))
	return Sanitize(cleaned)
}

// Sanitize removes characters meaningful to rendering contexts so the text is
// safe to echo back to a client.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&', '\'', '"':
			return -1
		}
		return r
	}, text)
}
