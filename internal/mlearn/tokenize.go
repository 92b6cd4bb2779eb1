package mlearn

import (
	"strings"
	"unicode"
)

// tokenize lowercases and splits on anything that is not a letter or
// digit. Single-character tokens are kept; the vectorizer's vocabulary
// cap does the real filtering.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
