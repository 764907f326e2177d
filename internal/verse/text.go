package verse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Clean normalizes verse text for display: whitespace is collapsed, the
// first letter is upper cased and the text ends with punctuation.
func Clean(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return text
	}

	r, size := utf8.DecodeRuneInString(text)
	if unicode.IsLower(r) {
		text = string(unicode.ToUpper(r)) + text[size:]
	}

	last, _ := utf8.DecodeLastRuneInString(text)
	switch {
	case strings.ContainsRune(".!?\"')", last):
	case strings.ContainsRune(",;:", last):
		text = strings.TrimRight(text, ",;:") + "."
	default:
		text += "."
	}
	return text
}
