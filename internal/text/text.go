// Package text normalizes free-text values before they are stored.
package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s as valid UTF-8 in NFC form.
// Invalid byte sequences are replaced by U+FFFD.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}

	return norm.NFC.String(s)
}
